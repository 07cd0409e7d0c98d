// Package source manages raw debug-log text and its division into logical
// lines. It knows nothing about record types or the call tree; splitting and
// start-marker discovery live here, everything downstream lives in
// internal/parser.
package source

import (
	"crypto/sha256"
	"os"
)

// File captures the raw content of a single debug log.
//
// Content is kept exactly as read (no CRLF normalization): the scanner
// resolves line endings per file so that mixed-ending logs still split
// correctly. Only a UTF-8 BOM is stripped, because it would otherwise glue
// itself to the first field of the header line.
type File struct {
	Path    string
	Content []byte
	Size    int64 // размер исходного файла в байтах, до среза BOM
	Hash    [32]byte
}

// Load reads a log file from disk.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := FromBytes(path, content)
	return f, nil
}

// FromBytes wraps in-memory log text (tests, stdin) in a File.
func FromBytes(name string, content []byte) *File {
	size := int64(len(content))
	content = stripBOM(content)
	return &File{
		Path:    name,
		Content: content,
		Size:    size,
		Hash:    sha256.Sum256(content),
	}
}

func stripBOM(content []byte) []byte {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:]
	}
	return content
}
