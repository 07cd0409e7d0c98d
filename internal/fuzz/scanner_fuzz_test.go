package fuzztests

import (
	"strings"
	"testing"

	"apexlog/internal/source"
)

// FuzzScannerSplitsLines checks that the line scanner terminates on any
// input and only ever yields non-empty lines without terminators.
func FuzzScannerSplitsLines(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		file := source.FromBytes("fuzz.log", input)
		sc := source.NewScanner(file)

		// каждая итерация двигает смещение, больше строк чем байт быть не может
		var total int
		for i := 0; ; i++ {
			if i > len(input)+1 {
				t.Fatalf("scanner did not terminate after %d lines", i)
			}
			line, ok := sc.Next()
			if !ok {
				break
			}
			if line == "" {
				t.Fatal("scanner yielded an empty line")
			}
			if strings.ContainsAny(line, "\n") {
				t.Fatalf("line contains a terminator: %q", line)
			}
			total += len(line)
		}
		if total > len(input) {
			t.Fatalf("lines longer than input: %d > %d", total, len(input))
		}
	})
}
