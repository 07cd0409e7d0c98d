package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apexlog/internal/logfmt"
)

var limitsCmd = &cobra.Command{
	Use:   "limits [flags] <file.log>",
	Short: "Show governor limit usage",
	Long: `Limits prints the merged resource consumption of the transaction and,
when the log carries several namespaces, a per-namespace breakdown.
Rows above ninety percent of their limit are flagged.`,
	Args: cobra.ExactArgs(1),
	RunE: runLimits,
}

func init() {
	limitsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runLimits(cmd *cobra.Command, args []string) error {
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

	res, err := analyzeArg(args[0])
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		logfmt.Limits(os.Stdout, res.Trace)
	case "json":
		if err := logfmt.LimitsJSON(os.Stdout, res.Trace); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return printTimings(cmd, res)
}
