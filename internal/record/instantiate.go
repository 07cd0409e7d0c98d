package record

import (
	"strings"

	"apexlog/internal/limits"
	"apexlog/internal/tree"
)

// Instantiate builds the tree node for one recognized log line. fields is the
// delimiter-split line, fields[1] the type name that resolved meta.
func Instantiate(meta Meta, typeName string, fields []string) *tree.Event {
	e := &tree.Event{
		TypeName:             typeName,
		ExitStamp:            tree.NoStamp,
		LineRef:              tree.NoLine,
		ExitTypes:            meta.ExitTypes,
		ClosesOnNextLine:     meta.ClosesOnNextLine,
		IsExitCandidate:      meta.IsExitCandidate,
		SignalsDiscontinuity: meta.SignalsDiscontinuity,
		AcceptsText:          meta.AcceptsText,
		HasLineRef:           meta.HasLineRef,
		IsPackagedCode:       meta.IsPackagedCode,
	}
	if ts, ok := ParseTimestamp(fieldAt(fields, 0)); ok {
		e.Timestamp = ts
	}
	if meta.HasLineRef {
		e.LineRef = parseLineRef(fieldAt(fields, 2))
	}
	if meta.DeclaresNamespace {
		// ENTERING_MANAGED_PKG names it bare, LIMIT_USAGE_FOR_NS in parens.
		e.Namespace = strings.Trim(fieldAt(fields, 2), "()")
	}
	populate(e, typeName, fields)
	return e
}

func pair(n int64) tree.Pair {
	return tree.Pair{Self: n, Total: n}
}

// populate fills the domain-specific payload: display text, counters and the
// entry/exit pairing hooks.
func populate(e *tree.Event, typeName string, fields []string) {
	switch typeName {
	case "SOQL_EXECUTE_BEGIN":
		e.SOQLCount = pair(1)
		e.Text = tail(fields)
		// Размер результата известен только записи выхода.
		e.OnEnd = func(_ *tree.Trace, end *tree.Event, _ []*tree.Event) {
			e.QueryRows = end.QueryRows
		}
	case "SOQL_EXECUTE_END":
		e.QueryRows = pair(rowCount(fields))
	case "SOSL_EXECUTE_BEGIN":
		e.SOSLCount = pair(1)
		e.Text = tail(fields)
		e.OnEnd = func(_ *tree.Trace, end *tree.Event, _ []*tree.Event) {
			e.SOSLRows = end.SOSLRows
		}
	case "SOSL_EXECUTE_END":
		e.SOSLRows = pair(rowCount(fields))
	case "DML_BEGIN":
		e.DMLCount = pair(1)
		e.DMLRows = pair(rowCount(fields))
		if len(fields) > 3 {
			e.Text = strings.Join(fields[3:], " ")
		}
	case "EXCEPTION_THROWN":
		e.ThrownCount = 1
		e.Text = tail(fields)
	case "ENTERING_MANAGED_PKG":
		e.Text = e.Namespace
	case "LIMIT_USAGE_FOR_NS":
		// The usage numbers arrive as continuation text; parse once the next
		// record shows the block is complete.
		e.OnAfter = func(t *tree.Trace, _ *tree.Event) {
			usage, n := limits.ParseBlock(e.Text)
			if n > 0 {
				t.Usage.Record(e.Timestamp, e.Namespace, usage)
			}
		}
	case "VARIABLE_ASSIGNMENT":
		if len(fields) > 3 {
			e.Text = strings.Join(fields[3:], " ")
		}
	default:
		e.Text = tail(fields)
	}
}
