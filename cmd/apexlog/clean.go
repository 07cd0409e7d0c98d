package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apexlog/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the on-disk summary cache",
	Long:  "Remove cached analysis summaries. The next directory analysis re-parses every log.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenCache("apexlog")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	dir := cache.Dir()
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", dir)
	return nil
}
