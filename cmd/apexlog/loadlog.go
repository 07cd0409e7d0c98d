package main

import (
	"fmt"
	"io"
	"os"

	"apexlog/internal/driver"
)

// analyzeArg resolves one <file.log> command argument: a path, or "-" for
// stdin. Directories are rejected here, их обслуживает команда analyze.
func analyzeArg(path string) (*driver.Result, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return driver.AnalyzeBytes("stdin", data), nil
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%q is a directory (use 'apexlog analyze' for directories)", path)
	}

	res, err := driver.Analyze(path)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return res, nil
}
