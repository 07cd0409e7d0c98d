package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"apexlog/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "apexlog",
	Short: "Salesforce Apex debug log analyzer",
	Long: `apexlog reconstructs the execution tree hidden inside a Salesforce
Apex debug log: who called whom, how long it took, which queries and DML
ran where, how close the transaction came to its governor limits.`,
}

// main registers subcommands and global flags, then runs the root command.
// Любая ошибка выполнения завершает процесс с кодом 1.
func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(limitsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show phase timing information")
	rootCmd.PersistentFlags().Int("max-issues", 100, "maximum number of issues to show")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile of apexlog itself to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile of apexlog itself to this file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace of apexlog itself to this file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// applyColorMode переключает глобальный цветовой режим рендереров.
func applyColorMode(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "auto":
		// fatih/color сам определяет терминал
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}
