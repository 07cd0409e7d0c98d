package logfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"apexlog/internal/driver"
)

// DirTable renders one line per analyzed log of a directory run: duration,
// event count, notable counters and cache state, failures inline.
func DirTable(w io.Writer, results []driver.DirResult) {
	width := 0
	for _, r := range results {
		if pw := runewidth.StringWidth(r.Path); pw > width {
			width = pw
		}
	}

	for _, r := range results {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(r.Path))
		if r.Err != nil {
			fmt.Fprintf(w, "%s%s  %s\n", r.Path, pad, errorColor.Sprintf("error: %v", r.Err))
			continue
		}

		s := r.Summary
		row := fmt.Sprintf("%s%s  %12s", r.Path, pad, formatNanos(s.Duration))
		row += num.Sprintf("  %7d events", s.EventCount)
		if s.SOQLQueries > 0 {
			row += "  " + countColor.Sprint(num.Sprintf("soql=%d", s.SOQLQueries))
		}
		if s.DMLStatements > 0 {
			row += "  " + countColor.Sprint(num.Sprintf("dml=%d", s.DMLStatements))
		}
		if s.Thrown > 0 {
			row += "  " + errorColor.Sprint(num.Sprintf("thrown=%d", s.Thrown))
		}
		if n := int64(s.IssueCount) + int64(s.ParseErrors); n > 0 {
			row += "  " + unexpectedColor.Sprintf("issues=%d", n)
		}
		if s.Truncated {
			row += "  " + truncatedColor.Sprint("(truncated)")
		}
		if r.FromCache {
			row += "  " + selfColor.Sprint("(cached)")
		}
		fmt.Fprintln(w, row)
	}
}
