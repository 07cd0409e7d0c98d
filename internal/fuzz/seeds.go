package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10  // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 256 << 10 // вход больше в живых логах просто обрезаем
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addHandwrittenSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.log файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".log" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

// addHandwrittenSeeds covers the structural edge cases the builder recovers
// from: lost exits, truncation markers, continuation text, CRLF, BOM.
func addHandwrittenSeeds(f *testing.F) {
	seeds := []string{
		"",
		"09:00:00.0 (0)|EXECUTION_STARTED\n09:00:00.1 (100)|EXECUTION_FINISHED\n",
		"09:00:00.0 (0)|EXECUTION_STARTED\n", // вход без выхода
		"09:00:00.1 (50)|METHOD_EXIT|[3]|01p|Foo.bar()\n",
		"09:00:00.0 (0)|CODE_UNIT_STARTED|[EXTERNAL]|T\n" +
			"09:00:00.0 (10)|EXCEPTION_THROWN|[5]|System.NullPointerException\n" +
			"and a continuation line of the stack trace\n" +
			"09:00:00.0 (90)|CODE_UNIT_FINISHED|[EXTERNAL]|T\n",
		"09:00:00.0 (0)|CODE_UNIT_STARTED|[EXTERNAL]|T\n" +
			"*** Skipped 12345 bytes of detailed log\n" +
			"*** MAXIMUM DEBUG LOG SIZE REACHED ***\n" +
			"09:00:00.9 (900)|USER_DEBUG|[1]|DEBUG|after\n",
		"09:00:00.0 (0)|ENTERING_MANAGED_PKG|acme\r\n09:00:00.0 (5)|ENTERING_MANAGED_PKG|acme\r\n",
		"\xef\xbb\xbf63.0 APEX_CODE,DEBUG\n09:00:00.0 (0)|EXECUTION_STARTED\n",
		"09:00:00.0 (0)|LIMIT_USAGE_FOR_NS|(default)|\n" +
			"  Number of SOQL queries: 1 out of 100\n",
		"|||||",
		"09:00:00.0 (not a number)|METHOD_ENTRY|[x]|",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

// clampInput bounds one fuzz input, copying so the engine's buffer is never
// aliased.
func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
