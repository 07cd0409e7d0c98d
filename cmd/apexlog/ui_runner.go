package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"apexlog/internal/driver"
	"apexlog/internal/ui"
)

type dirOutcome struct {
	results []driver.DirResult
	err     error
}

// runAnalyzeDirWithUI runs directory analysis behind the interactive
// progress list: пайплайн крутится в горутине и шлёт события в модель.
func runAnalyzeDirWithUI(ctx context.Context, title, dir string, opts driver.DirOptions) ([]driver.DirResult, error) {
	files, err := driver.ListLogFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Observer = func(ev driver.PhaseEvent) { events <- ev }
		results, err := driver.AnalyzeDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
