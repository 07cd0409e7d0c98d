package logfmt

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// num prints integers with thousands separators; row and byte counts in real
// logs run into the millions.
var num = message.NewPrinter(language.English)

// formatNanos renders a nanosecond span the way the log viewer does: raw
// below a microsecond, otherwise milliseconds with three decimals.
func formatNanos(ns int64) string {
	switch {
	case ns < 1_000:
		return fmt.Sprintf("%dns", ns)
	case ns < 1_000_000:
		return fmt.Sprintf("%.3fµs", float64(ns)/1_000)
	default:
		return fmt.Sprintf("%.3fms", float64(ns)/1_000_000)
	}
}
