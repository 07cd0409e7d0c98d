package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"apexlog/internal/logfmt"
	"apexlog/internal/record"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <file.log>",
	Short: "Render the reconstructed call tree",
	Long: `Tree prints the execution tree with per-node total and self durations,
query/DML counters and truncation marks. Use - to read the log from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	treeCmd.Flags().Int("depth", 0, "limit tree depth (0=unlimited)")
	treeCmd.Flags().String("min-duration", "", "hide subtrees faster than this, e.g. 5ms")
	treeCmd.Flags().StringSlice("hide", nil, "hide event categories, e.g. system,debug,variable")
}

func runTree(cmd *cobra.Command, args []string) error {
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
	depth, err := cmd.Flags().GetInt("depth")
	if err != nil {
		return fmt.Errorf("failed to get depth flag: %w", err)
	}
	minDuration, err := cmd.Flags().GetString("min-duration")
	if err != nil {
		return fmt.Errorf("failed to get min-duration flag: %w", err)
	}
	hide, err := cmd.Flags().GetStringSlice("hide")
	if err != nil {
		return fmt.Errorf("failed to get hide flag: %w", err)
	}
	maxIssues, err := cmd.Root().PersistentFlags().GetInt("max-issues")
	if err != nil {
		return fmt.Errorf("failed to get max-issues flag: %w", err)
	}

	var minNanos int64
	if minDuration != "" {
		d, err := time.ParseDuration(minDuration)
		if err != nil {
			return fmt.Errorf("invalid --min-duration: %w", err)
		}
		minNanos = int64(d)
	}
	for _, c := range hide {
		if !record.KnownCategory(c) {
			return fmt.Errorf("unknown category %q in --hide", c)
		}
	}

	res, err := analyzeArg(args[0])
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		logfmt.Tree(os.Stdout, res.Trace, logfmt.PrettyOpts{
			MaxDepth:       depth,
			MinDuration:    minNanos,
			HideCategories: hide,
		})
	case "json":
		if err := logfmt.JSON(os.Stdout, res.Path, res.Trace, logfmt.JSONOpts{MaxIssues: maxIssues}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return printTimings(cmd, res)
}
