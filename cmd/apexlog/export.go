package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"apexlog/internal/driver"
	"apexlog/internal/logfmt"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] <file.log>",
	Short: "Export the trace for external tools",
	Long: `Export renders the reconstructed trace for other tools: Chrome Trace
Event Format for chrome://tracing and Perfetto, folded stacks for flame
graph builders, or the full JSON document. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "chrome", "export format (chrome|folded|json)")
	exportCmd.Flags().Bool("include-raw", false, "carry raw log lines in the json export")
	exportCmd.Flags().StringP("out", "o", "", "write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := applyFileConfig(cmd, "."); err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	includeRaw, err := cmd.Flags().GetBool("include-raw")
	if err != nil {
		return fmt.Errorf("failed to get include-raw flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	maxIssues, err := cmd.Root().PersistentFlags().GetInt("max-issues")
	if err != nil {
		return fmt.Errorf("failed to get max-issues flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	switch format {
	case "chrome", "folded", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := analyzeArg(args[0])
	if err != nil {
		return err
	}
	opts := logfmt.JSONOpts{IncludeRaw: includeRaw, MaxIssues: maxIssues}

	if outPath == "" || outPath == "-" {
		if err := renderExport(os.Stdout, format, res, opts); err != nil {
			return err
		}
		return printTimings(cmd, res)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", outPath, err)
	}
	if err := renderExport(f, format, res, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %q: %w", outPath, err)
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "wrote %s\n", outPath)
	}
	return printTimings(cmd, res)
}

func renderExport(w io.Writer, format string, res *driver.Result, opts logfmt.JSONOpts) error {
	switch format {
	case "chrome":
		return logfmt.Chrome(w, res.Path, res.Trace)
	case "folded":
		return logfmt.Folded(w, res.Trace)
	default:
		return logfmt.JSON(w, res.Path, res.Trace, opts)
	}
}
