package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apexlog/internal/logfmt"
)

var issuesCmd = &cobra.Command{
	Use:   "issues [flags] <file.log>",
	Short: "List structural problems found while reconstructing the trace",
	Long: `Issues prints what the reconstruction had to work around: entries that
never exited, exits without entries, skipped-line markers, truncation,
plus lines the dispatcher could not recognize at all.`,
	Args: cobra.ExactArgs(1),
	RunE: runIssues,
}

func init() {
	issuesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runIssues(cmd *cobra.Command, args []string) error {
	if err := applyFileConfig(cmd, "."); err != nil {
		return err
	}
	if err := applyColorMode(cmd); err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxIssues, err := cmd.Root().PersistentFlags().GetInt("max-issues")
	if err != nil {
		return fmt.Errorf("failed to get max-issues flag: %w", err)
	}

	res, err := analyzeArg(args[0])
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		logfmt.Issues(os.Stdout, res.Trace, logfmt.PrettyOpts{MaxIssues: maxIssues})
	case "json":
		if err := logfmt.IssuesJSON(os.Stdout, res.Trace, logfmt.JSONOpts{MaxIssues: maxIssues}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return printTimings(cmd, res)
}
