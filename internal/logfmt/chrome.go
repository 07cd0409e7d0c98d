package logfmt

import (
	"encoding/json"
	"io"

	"apexlog/internal/record"
	"apexlog/internal/tree"
)

// TraceEvent is one entry of the Chrome Trace Event Format, as read by
// chrome://tracing, Perfetto and speedscope. Timestamps and durations
// are microseconds.
type TraceEvent struct {
	Name      string         `json:"name,omitempty"`
	Category  string         `json:"cat,omitempty"`
	Phase     string         `json:"ph,omitempty"`
	Timestamp int64          `json:"ts"`
	Duration  int64          `json:"dur,omitempty"`
	ProcessID int64          `json:"pid"`
	ThreadID  int64          `json:"tid"`
	Args      map[string]any `json:"args,omitempty"`
}

type chromeFile struct {
	TraceEvents     []TraceEvent `json:"traceEvents"`
	DisplayTimeUnit string       `json:"displayTimeUnit"`
}

const (
	phaseComplete = "X"
	phaseMetadata = "M"
	phaseInstant  = "i"
)

func chromeName(e *tree.Event) string {
	if e.Text != "" && e.TypeName != e.Text {
		return label(e)
	}
	return e.TypeName
}

func chromeArgs(e *tree.Event) map[string]any {
	args := map[string]any{}
	if e.Namespace != "" && e.Namespace != tree.DefaultNamespace {
		args["namespace"] = e.Namespace
	}
	if e.LineRef == tree.ExternalLine {
		args["line"] = "EXTERNAL"
	} else if e.LineRef != tree.NoLine {
		args["line"] = e.LineRef
	}
	if n := e.SOQLCount.Total; n > 0 {
		args["soql"] = n
	}
	if n := e.QueryRows.Total; n > 0 {
		args["query_rows"] = n
	}
	if n := e.DMLCount.Total; n > 0 {
		args["dml"] = n
	}
	if n := e.ThrownCount; n > 0 {
		args["thrown"] = n
	}
	if e.IsTruncated {
		args["truncated"] = true
	}
	if len(args) == 0 {
		return nil
	}
	return args
}

// Chrome writes the trace in Chrome Trace Event Format. Every node
// becomes a complete ("X") event so nested calls render as a flame
// chart; issues become instant markers on the same track.
func Chrome(w io.Writer, name string, tr *tree.Trace) error {
	out := chromeFile{
		TraceEvents:     []TraceEvent{},
		DisplayTimeUnit: "ms",
	}
	if name != "" {
		out.TraceEvents = append(out.TraceEvents, TraceEvent{
			Name:      "process_name",
			Phase:     phaseMetadata,
			ProcessID: 1,
			ThreadID:  1,
			Args:      map[string]any{"name": name},
		})
	}
	tree.Walk(tr.Children, func(e *tree.Event, depth int) bool {
		ev := TraceEvent{
			Name:      chromeName(e),
			Phase:     phaseComplete,
			Timestamp: e.Timestamp / 1000,
			Duration:  e.Duration.Total / 1000,
			ProcessID: 1,
			ThreadID:  1,
			Args:      chromeArgs(e),
		}
		if meta, ok := record.Describe(e.TypeName); ok {
			ev.Category = meta.Category.String()
		}
		out.TraceEvents = append(out.TraceEvents, ev)
		return true
	})
	for _, is := range tr.Issues.Items() {
		out.TraceEvents = append(out.TraceEvents, TraceEvent{
			Name:      is.Summary,
			Category:  "issue",
			Phase:     phaseInstant,
			Timestamp: is.Time / 1000,
			ProcessID: 1,
			ThreadID:  1,
			Args:      map[string]any{"description": is.Description, "kind": is.Kind.String()},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
