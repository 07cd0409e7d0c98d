// Package logfmt renders a reconstructed trace for people and for machines:
// pretty terminal views, a JSON DTO, Chrome Trace Event Format and folded
// flame-graph stacks. Everything here reads the trace, nothing mutates it.
package logfmt

// PrettyOpts configures the human-readable views.
type PrettyOpts struct {
	// MaxDepth cuts the tree below this depth, 0 shows everything.
	MaxDepth int
	// MinDuration hides subtrees whose total time is below this, in ns.
	MinDuration int64
	// MaxIssues bounds the issue list, 0 shows all.
	MaxIssues int
	// HideCategories drops events of these categories from the tree view.
	HideCategories []string
}

// JSONOpts configures the machine-readable DTO.
type JSONOpts struct {
	// IncludeRaw carries the raw log line of every event. Off by default:
	// it roughly doubles the payload.
	IncludeRaw bool
	// MaxIssues bounds the issue list, 0 keeps all.
	MaxIssues int
}
