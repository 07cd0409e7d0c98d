package source

import (
	"bytes"
	"regexp"
)

// execStartedPattern находит каноническую строку начала выполнения.
// Примеры: "09:18:22.6 (6574780)|EXECUTION_STARTED".
var execStartedPattern = regexp.MustCompile(`(?m)^\d{2}:\d{2}:\d{2}\.\d+ \(\d+\)\|EXECUTION_STARTED`)

// Scanner yields the logical lines of a log, in order, skipping blanks.
//
// Scanning starts at the execution-started marker when one exists, falling
// back to offset 0 for logs that lost their prologue. Whether line endings
// are CRLF is sniffed once per file, after the start offset; each boundary
// then only has to look at the byte before the line feed. This keeps mixed
// line endings within one file working without re-deriving the convention
// for every line.
type Scanner struct {
	content []byte
	off     int
	crlf    bool
}

// NewScanner positions a scanner at the start of the trace inside f.
func NewScanner(f *File) *Scanner {
	return scan(f.Content)
}

func scan(content []byte) *Scanner {
	start := 0
	if loc := execStartedPattern.FindIndex(content); loc != nil {
		start = loc[0]
	}
	return &Scanner{
		content: content,
		off:     start,
		crlf:    bytes.Contains(content[start:], []byte("\r\n")),
	}
}

// Next returns the next non-blank logical line. The second result is false
// once the input is exhausted. The final line is produced even when the log
// ends without a line terminator.
func (s *Scanner) Next() (string, bool) {
	for s.off < len(s.content) {
		nl := bytes.IndexByte(s.content[s.off:], '\n')
		var line []byte
		if nl < 0 {
			line = s.content[s.off:]
			s.off = len(s.content)
		} else {
			end := s.off + nl
			if s.crlf && end > s.off && s.content[end-1] == '\r' {
				line = s.content[s.off : end-1]
			} else {
				line = s.content[s.off:end]
			}
			s.off = end + 1
		}
		if len(line) == 0 {
			continue
		}
		return string(line), true
	}
	return "", false
}
