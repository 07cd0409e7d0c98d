package diag

import (
	"fmt"
	"strings"
)

// FormatGolden renders issues into a stable, single-line-per-entry
// representation suitable for golden assertions in tests and for the CLI
// short output. The input is expected to be time-sorted already (Log keeps
// that invariant).
func FormatGolden(issues []Issue) string {
	var b strings.Builder
	for i, issue := range issues {
		fmt.Fprintf(&b, "%s %d %s: %s", strings.ToUpper(issue.Kind.String()), issue.Time, issue.Summary, issue.Description)
		if i < len(issues)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
