package fuzztests

import (
	"testing"
	"time"

	"apexlog/internal/parser"
	"apexlog/internal/source"
	"apexlog/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParseHoldsInvariants feeds arbitrary bytes through the full pipeline
// and verifies the reconstructed trace structurally, whatever the input.
func FuzzParseHoldsInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		tr := parser.Parse(source.FromBytes("fuzz.log", input))
		if err := testkit.CheckTreeInvariants(tr); err != nil {
			t.Fatalf("invariant violated on %d-byte input: %v", len(input), err)
		}
	})
}

// FuzzParseNoHang tests that the parser doesn't hang on any input. Error
// recovery walks the same line from several states, so a bug there shows up
// as an infinite loop rather than a panic.
func FuzzParseNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Заведомо неприятные случаи: выходы без входов, разрывы, маркеры подряд.
	f.Add([]byte("09:00:00.0 (10)|METHOD_EXIT|[1]|01p|a()\n09:00:00.0 (20)|METHOD_EXIT|[1]|01p|a()\n"))
	f.Add([]byte("*** MAXIMUM DEBUG LOG SIZE REACHED ***\n*** MAXIMUM DEBUG LOG SIZE REACHED ***\n"))
	f.Add([]byte("09:00:00.0 (0)|CODE_UNIT_STARTED|[EXTERNAL]|T\n09:00:00.0 (1)|EXCEPTION_THROWN|[2]|X\n09:00:00.0 (2)|CODE_UNIT_FINISHED|[EXTERNAL]|U\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parser.Parse(source.FromBytes("fuzz.log", input))
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen], []byte("...")...)
}
