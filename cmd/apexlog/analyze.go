package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"apexlog/internal/driver"
	"apexlog/internal/logfmt"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file.log|directory>",
	Short: "Summarize one debug log or a directory of logs",
	Long: `Analyze reconstructs the execution tree of an Apex debug log and prints
a summary: duration, event counts, query and DML totals, governor limits,
issues. Pointed at a directory it analyzes every *.log file in parallel
and serves unchanged files from the summary cache.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	analyzeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	analyzeCmd.Flags().Bool("no-cache", false, "ignore the summary cache and re-parse every file")
	analyzeCmd.Flags().String("ui", "auto", "interactive progress for directories (auto|on|off)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := applyFileConfig(cmd, "."); err != nil {
		return err
	}
	if err := applyColorMode(cmd); err != nil {
		return err
	}

	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Проверяем, файл это или директория
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return runAnalyzeFile(cmd, path, format)
	}
	return runAnalyzeDir(cmd, path, format)
}

func runAnalyzeFile(cmd *cobra.Command, path, format string) error {
	res, err := driver.Analyze(path)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	switch format {
	case "json":
		sum, err := driver.Summarize(res.Path, res.Trace)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sum); err != nil {
			return err
		}
	default:
		logfmt.Summary(os.Stdout, res.Path, res.Trace)
	}

	return printTimings(cmd, res)
}

func runAnalyzeDir(cmd *cobra.Command, dir, format string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	var cache *driver.Cache
	if !noCache {
		cache, err = driver.OpenCache("apexlog")
		if err != nil {
			// Кэш — удобство: без него анализ всё равно работает.
			fmt.Fprintf(os.Stderr, "warning: summary cache unavailable: %v\n", err)
		}
	}
	opts := driver.DirOptions{Jobs: jobs, Cache: cache}

	useUI := format == "pretty" && shouldUseTUI(mode)
	start := time.Now()

	var results []driver.DirResult
	if useUI {
		results, err = runAnalyzeDirWithUI(cmd.Context(), "analyzing "+dir, dir, opts)
	} else {
		results, err = driver.AnalyzeDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stdout, "no .log files under %s\n", dir)
		return nil
	}

	cached, bad := 0, 0
	for _, r := range results {
		if r.FromCache {
			cached++
		}
		if r.Err != nil {
			bad++
		}
	}

	if format == "json" {
		if err := renderDirJSON(os.Stdout, results); err != nil {
			return err
		}
	} else if useUI {
		// Модель прогресса уже нарисовала список, осталось показать ошибки.
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			}
		}
	} else {
		logfmt.DirTable(os.Stdout, results)
	}

	if format == "pretty" && !quiet {
		fmt.Fprintf(os.Stdout, "%d logs in %.1f ms, %d cached, %d failed\n",
			len(results), float64(time.Since(start))/float64(time.Millisecond), cached, bad)
	}
	if bad > 0 {
		return fmt.Errorf("analysis failed for %d of %d logs", bad, len(results))
	}
	return nil
}

type dirEntry struct {
	Path    string          `json:"path"`
	Error   string          `json:"error,omitempty"`
	Summary *driver.Summary `json:"summary,omitempty"`
}

func renderDirJSON(w io.Writer, results []driver.DirResult) error {
	entries := make([]dirEntry, 0, len(results))
	for _, r := range results {
		e := dirEntry{Path: r.Path, Summary: r.Summary}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		entries = append(entries, e)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// printTimings dumps the phase report to stderr when --timings is set.
func printTimings(cmd *cobra.Command, res *driver.Result) error {
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		fmt.Fprint(os.Stderr, res.Timing.Summary())
	}
	return nil
}
