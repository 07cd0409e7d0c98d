package logfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"apexlog/internal/diag"
	"apexlog/internal/limits"
	"apexlog/internal/record"
	"apexlog/internal/tree"
)

var (
	durationColor   = color.New(color.FgYellow)
	selfColor       = color.New(color.FgHiBlack)
	unexpectedColor = color.New(color.FgRed, color.Bold)
	errorColor      = color.New(color.FgRed)
	skipColor       = color.New(color.FgCyan)
	packageColor    = color.New(color.FgMagenta)
	countColor      = color.New(color.FgGreen)
	truncatedColor  = color.New(color.FgRed)
	headerColor     = color.New(color.Bold)
)

// label is the display name of an event: its text if the factory produced
// one, the record kind otherwise. Multi-line payloads show their first line.
func label(e *tree.Event) string {
	if e.Text == "" {
		return e.TypeName
	}
	text := e.Text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return e.TypeName
	}
	if runewidth.StringWidth(text) > 100 {
		text = runewidth.Truncate(text, 97, "...")
	}
	return text
}

// counters renders the non-zero aggregates of a node, compact.
func counters(e *tree.Event) string {
	var parts []string
	if e.SOQLCount.Total > 0 {
		parts = append(parts, num.Sprintf("soql=%d", e.SOQLCount.Total))
	}
	if e.QueryRows.Total > 0 {
		parts = append(parts, num.Sprintf("rows=%d", e.QueryRows.Total))
	}
	if e.SOSLCount.Total > 0 {
		parts = append(parts, num.Sprintf("sosl=%d", e.SOSLCount.Total))
	}
	if e.DMLCount.Total > 0 {
		parts = append(parts, num.Sprintf("dml=%d", e.DMLCount.Total))
	}
	if e.DMLRows.Total > 0 {
		parts = append(parts, num.Sprintf("dmlrows=%d", e.DMLRows.Total))
	}
	if e.ThrownCount > 0 {
		parts = append(parts, num.Sprintf("thrown=%d", e.ThrownCount))
	}
	if len(parts) == 0 {
		return ""
	}
	return countColor.Sprint(strings.Join(parts, " "))
}

// Tree writes the call tree with guide lines, one event per row.
func Tree(w io.Writer, tr *tree.Trace, opts PrettyOpts) {
	hidden := make(map[string]bool, len(opts.HideCategories))
	for _, c := range opts.HideCategories {
		hidden[strings.ToLower(c)] = true
	}

	type frame struct {
		e      *tree.Event
		prefix string
		last   bool
		depth  int
	}
	var stack []frame
	for i := len(tr.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{tr.Children[i], "", i == len(tr.Children)-1, 0})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e := f.e

		if opts.MinDuration > 0 && e.Duration.Total < opts.MinDuration {
			continue
		}
		if meta, ok := record.Describe(e.TypeName); ok && hidden[meta.Category.String()] {
			continue
		}

		connector := "├─ "
		childPrefix := f.prefix + "│  "
		if f.last {
			connector = "└─ "
			childPrefix = f.prefix + "   "
		}
		if f.depth == 0 {
			connector = ""
			childPrefix = ""
		}

		name := label(e)
		if e.IsPackagedCode {
			name = packageColor.Sprint(name)
		}
		row := f.prefix + connector + name
		row += "  " + durationColor.Sprint(formatNanos(e.Duration.Total))
		row += " " + selfColor.Sprintf("(self %s)", formatNanos(e.Duration.Self))
		if c := counters(e); c != "" {
			row += "  " + c
		}
		if e.IsTruncated {
			row += "  " + truncatedColor.Sprint("(truncated)")
		}
		fmt.Fprintln(w, row)

		if opts.MaxDepth > 0 && f.depth+1 >= opts.MaxDepth {
			continue
		}
		for i := len(e.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{e.Children[i], childPrefix, i == len(e.Children)-1, f.depth + 1})
		}
	}
}

// kindColor picks the rendering color for an issue kind.
func kindColor(k diag.Kind) *color.Color {
	switch k {
	case diag.KindError:
		return errorColor
	case diag.KindSkip:
		return skipColor
	default:
		return unexpectedColor
	}
}

// Issues writes the issue list and the parse errors, time-ordered.
func Issues(w io.Writer, tr *tree.Trace, opts PrettyOpts) {
	items := tr.Issues.Items()
	if opts.MaxIssues > 0 && len(items) > opts.MaxIssues {
		items = items[:opts.MaxIssues]
	}
	if len(items) == 0 && len(tr.ParseErrors) == 0 {
		fmt.Fprintln(w, "no issues")
		return
	}
	for _, is := range items {
		fmt.Fprintf(w, "%s %s %s: %s\n",
			kindColor(is.Kind).Sprintf("%-10s", strings.ToUpper(is.Kind.String())),
			formatNanos(is.Time), is.Summary, is.Description)
	}
	if len(tr.ParseErrors) > 0 {
		fmt.Fprintln(w, headerColor.Sprint("parse errors:"))
		for _, msg := range tr.ParseErrors {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
}

// Limits writes the merged governor-limit table, then one block per
// namespace when more than one reported.
func Limits(w io.Writer, tr *tree.Trace) {
	writeUsage := func(u limits.Usage) {
		width := 0
		for _, r := range limits.Resources() {
			if rw := runewidth.StringWidth(r.String()); rw > width {
				width = rw
			}
		}
		for _, r := range limits.Resources() {
			v := u[r]
			if v.Used == 0 && v.Limit == 0 {
				continue
			}
			name := r.String() + strings.Repeat(" ", width-runewidth.StringWidth(r.String()))
			row := num.Sprintf("  %s  %10d / %d", name, v.Used, v.Limit)
			if v.Limit > 0 && v.Used*10 >= v.Limit*9 {
				row += "  " + unexpectedColor.Sprint("(>90%)")
			}
			fmt.Fprintln(w, row)
		}
	}

	fmt.Fprintln(w, headerColor.Sprint("governor limits (all namespaces):"))
	writeUsage(tr.MergedUsage)

	namespaces := tr.Usage.Namespaces()
	if len(namespaces) < 2 {
		return
	}
	for _, ns := range namespaces {
		u, ok := tr.Usage.ByNamespace(ns)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\n", headerColor.Sprintf("namespace %s:", ns))
		writeUsage(u)
	}
}

// Summary writes the one-screen analysis overview used by the analyze
// command.
func Summary(w io.Writer, name string, tr *tree.Trace) {
	fmt.Fprintln(w, headerColor.Sprint(name))
	fmt.Fprintf(w, "  duration     %s\n", durationColor.Sprint(formatNanos(tr.TotalDuration())))
	fmt.Fprintf(w, "  size         %s\n", num.Sprintf("%d bytes", tr.Size))
	fmt.Fprintf(w, "  events       %s\n", num.Sprintf("%d", tree.Count(tr.Children)))
	fmt.Fprintf(w, "  max depth    %d\n", tree.MaxDepth(tr.Children))

	var soql, rows, dml, thrown int64
	for _, root := range tr.Children {
		soql += root.SOQLCount.Total
		rows += root.QueryRows.Total
		dml += root.DMLCount.Total
		thrown += root.ThrownCount
	}
	fmt.Fprintf(w, "  soql         %s\n", num.Sprintf("%d queries, %d rows", soql, rows))
	fmt.Fprintf(w, "  dml          %s\n", num.Sprintf("%d statements", dml))
	if thrown > 0 {
		fmt.Fprintf(w, "  exceptions   %s\n", errorColor.Sprint(num.Sprintf("%d", thrown)))
	}
	if ns := tr.NamespaceList(); len(ns) > 0 {
		fmt.Fprintf(w, "  namespaces   %s\n", strings.Join(ns, ", "))
	}
	fmt.Fprintf(w, "  issues       %d (+%d parse errors)\n", tr.Issues.Len(), len(tr.ParseErrors))
	if tr.Truncated() {
		fmt.Fprintf(w, "  %s\n", truncatedColor.Sprintf("truncated at %s", formatNanos(tr.TruncationTime)))
	}
}
