package logfmt

import (
	"encoding/json"
	"io"
	"strconv"

	"apexlog/internal/limits"
	"apexlog/internal/record"
	"apexlog/internal/tree"
)

// PairJSON is a self/total counter pair.
type PairJSON struct {
	Self  int64 `json:"self"`
	Total int64 `json:"total"`
}

// EventJSON is one node of the exported tree.
type EventJSON struct {
	Type      string      `json:"type"`
	Text      string      `json:"text,omitempty"`
	Raw       string      `json:"raw,omitempty"`
	Timestamp int64       `json:"timestamp"`
	ExitStamp *int64      `json:"exit_stamp,omitempty"`
	Line      string      `json:"line,omitempty"`
	Namespace string      `json:"namespace,omitempty"`
	Category  string      `json:"category,omitempty"`
	Truncated bool        `json:"truncated,omitempty"`
	Duration  PairJSON    `json:"duration"`
	SOQL      *PairJSON   `json:"soql,omitempty"`
	QueryRows *PairJSON   `json:"query_rows,omitempty"`
	SOSL      *PairJSON   `json:"sosl,omitempty"`
	SOSLRows  *PairJSON   `json:"sosl_rows,omitempty"`
	DML       *PairJSON   `json:"dml,omitempty"`
	DMLRows   *PairJSON   `json:"dml_rows,omitempty"`
	Thrown    int64       `json:"thrown,omitempty"`
	Children  []EventJSON `json:"children,omitempty"`
}

// IssueJSON is one diagnostic finding.
type IssueJSON struct {
	Time        int64  `json:"time"`
	Kind        string `json:"kind"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
}

// LimitJSON is one governor-limit row.
type LimitJSON struct {
	Resource string `json:"resource"`
	Used     int64  `json:"used"`
	Limit    int64  `json:"limit"`
}

// NamespaceUsageJSON is the limit table of one namespace.
type NamespaceUsageJSON struct {
	Namespace string      `json:"namespace"`
	Limits    []LimitJSON `json:"limits"`
}

// DebugLevelJSON is one settings-header pair.
type DebugLevelJSON struct {
	Category string `json:"category"`
	Level    string `json:"level"`
}

// TraceJSON is the root of the exported trace.
type TraceJSON struct {
	Name           string               `json:"name,omitempty"`
	Size           int64                `json:"size"`
	Duration       int64                `json:"duration"`
	EventCount     int                  `json:"event_count"`
	MaxDepth       int                  `json:"max_depth"`
	Truncated      bool                 `json:"truncated,omitempty"`
	TruncationTime *int64               `json:"truncation_time,omitempty"`
	DebugLevels    []DebugLevelJSON     `json:"debug_levels,omitempty"`
	Namespaces     []string             `json:"namespaces,omitempty"`
	Issues         []IssueJSON          `json:"issues,omitempty"`
	ParseErrors    []string             `json:"parse_errors,omitempty"`
	Limits         []LimitJSON          `json:"limits,omitempty"`
	NamespaceUsage []NamespaceUsageJSON `json:"namespace_usage,omitempty"`
	Events         []EventJSON          `json:"events,omitempty"`
}

func pairJSON(p tree.Pair) *PairJSON {
	if p.Total == 0 && p.Self == 0 {
		return nil
	}
	return &PairJSON{Self: p.Self, Total: p.Total}
}

func lineJSON(ref int) string {
	switch ref {
	case tree.NoLine:
		return ""
	case tree.ExternalLine:
		return "EXTERNAL"
	default:
		return strconv.Itoa(ref)
	}
}

func eventJSON(e *tree.Event, opts JSONOpts) EventJSON {
	out := EventJSON{
		Type:      e.TypeName,
		Text:      e.Text,
		Timestamp: e.Timestamp,
		Line:      lineJSON(e.LineRef),
		Namespace: e.Namespace,
		Truncated: e.IsTruncated,
		Duration:  PairJSON{Self: e.Duration.Self, Total: e.Duration.Total},
		Thrown:    e.ThrownCount,
	}
	if opts.IncludeRaw {
		out.Raw = e.RawLine
	}
	if meta, ok := record.Describe(e.TypeName); ok {
		out.Category = meta.Category.String()
	}
	if e.ExitStamp != tree.NoStamp {
		exit := e.ExitStamp
		out.ExitStamp = &exit
	}
	out.SOQL = pairJSON(e.SOQLCount)
	out.QueryRows = pairJSON(e.QueryRows)
	out.SOSL = pairJSON(e.SOSLCount)
	out.SOSLRows = pairJSON(e.SOSLRows)
	out.DML = pairJSON(e.DMLCount)
	out.DMLRows = pairJSON(e.DMLRows)
	for _, c := range e.Children {
		out.Children = append(out.Children, eventJSON(c, opts))
	}
	return out
}

func limitsJSON(u limits.Usage) []LimitJSON {
	var out []LimitJSON
	for _, r := range limits.Resources() {
		v := u[r]
		if v.Used == 0 && v.Limit == 0 {
			continue
		}
		out = append(out, LimitJSON{Resource: r.String(), Used: v.Used, Limit: v.Limit})
	}
	return out
}

// BuildTraceOutput assembles the full DTO without serializing it.
func BuildTraceOutput(name string, tr *tree.Trace, opts JSONOpts) TraceJSON {
	out := TraceJSON{
		Name:       name,
		Size:       tr.Size,
		Duration:   tr.TotalDuration(),
		EventCount: tree.Count(tr.Children),
		MaxDepth:   tree.MaxDepth(tr.Children),
		Truncated:  tr.Truncated(),
		Namespaces: tr.NamespaceList(),
		Limits:     limitsJSON(tr.MergedUsage),
	}
	if tr.Truncated() {
		cut := tr.TruncationTime
		out.TruncationTime = &cut
	}
	for _, dl := range tr.DebugLevels {
		out.DebugLevels = append(out.DebugLevels, DebugLevelJSON{Category: dl.Category, Level: dl.Level})
	}
	items := tr.Issues.Items()
	if opts.MaxIssues > 0 && len(items) > opts.MaxIssues {
		items = items[:opts.MaxIssues]
	}
	for _, is := range items {
		out.Issues = append(out.Issues, IssueJSON{
			Time:        is.Time,
			Kind:        is.Kind.String(),
			Summary:     is.Summary,
			Description: is.Description,
		})
	}
	out.ParseErrors = append(out.ParseErrors, tr.ParseErrors...)
	for _, ns := range tr.Usage.Namespaces() {
		if u, ok := tr.Usage.ByNamespace(ns); ok {
			out.NamespaceUsage = append(out.NamespaceUsage, NamespaceUsageJSON{
				Namespace: ns,
				Limits:    limitsJSON(u),
			})
		}
	}
	for _, root := range tr.Children {
		out.Events = append(out.Events, eventJSON(root, opts))
	}
	return out
}

// JSON serializes the full trace DTO, indented.
func JSON(w io.Writer, name string, tr *tree.Trace, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTraceOutput(name, tr, opts))
}

// issuesOutput is the reduced DTO of the issues subcommand.
type issuesOutput struct {
	Issues      []IssueJSON `json:"issues"`
	ParseErrors []string    `json:"parse_errors,omitempty"`
	Count       int         `json:"count"`
}

// IssuesJSON serializes the findings only.
func IssuesJSON(w io.Writer, tr *tree.Trace, opts JSONOpts) error {
	full := BuildTraceOutput("", tr, opts)
	out := issuesOutput{
		Issues:      full.Issues,
		ParseErrors: full.ParseErrors,
		Count:       len(full.Issues),
	}
	if out.Issues == nil {
		out.Issues = []IssueJSON{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// limitsOutput is the reduced DTO of the limits subcommand.
type limitsOutput struct {
	Limits         []LimitJSON          `json:"limits"`
	NamespaceUsage []NamespaceUsageJSON `json:"namespace_usage,omitempty"`
}

// LimitsJSON serializes the merged and per-namespace limit tables.
func LimitsJSON(w io.Writer, tr *tree.Trace) error {
	out := limitsOutput{
		Limits:         limitsJSON(tr.MergedUsage),
		NamespaceUsage: BuildTraceOutput("", tr, JSONOpts{}).NamespaceUsage,
	}
	if out.Limits == nil {
		out.Limits = []LimitJSON{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
