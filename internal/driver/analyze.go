// Package driver orchestrates log analysis: load a file, reconstruct its
// call tree, time the phases, and fan the same pipeline out over a
// directory. Commands talk to this package, never to the parser directly.
package driver

import (
	"fmt"

	"apexlog/internal/observ"
	"apexlog/internal/parser"
	"apexlog/internal/source"
	"apexlog/internal/tree"
)

// Result is the outcome of analyzing one log file.
type Result struct {
	Path   string
	File   *source.File
	Trace  *tree.Trace
	Timing observ.Report
}

// Analyze reads one log file and reconstructs its trace.
func Analyze(path string) (*Result, error) {
	tm := observ.NewTimer()

	read := tm.Track("read")
	f, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	read(fmt.Sprintf("%d bytes", f.Size))

	return analyzeFile(path, f, tm), nil
}

// AnalyzeBytes runs the pipeline over in-memory content, for stdin.
func AnalyzeBytes(name string, content []byte) *Result {
	tm := observ.NewTimer()
	read := tm.Track("read")
	f := source.FromBytes(name, content)
	read(fmt.Sprintf("%d bytes", f.Size))
	return analyzeFile(name, f, tm)
}

func analyzeFile(path string, f *source.File, tm *observ.Timer) *Result {
	parse := tm.Track("parse")
	tr := parser.Parse(f)
	parse(fmt.Sprintf("%d events", tree.Count(tr.Children)))

	return &Result{
		Path:   path,
		File:   f,
		Trace:  tr,
		Timing: tm.Report(),
	}
}
