package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// fileConfig is the optional apexlog.toml discovered by walking up from the
// working directory. Its values become flag defaults; flags always win.
type fileConfig struct {
	Output  outputConfig  `toml:"output"`
	Tree    treeConfig    `toml:"tree"`
	Analyze analyzeConfig `toml:"analyze"`
	Export  exportConfig  `toml:"export"`
}

type outputConfig struct {
	Color     string `toml:"color"`
	MaxIssues int    `toml:"max-issues"`
}

type treeConfig struct {
	Depth       int      `toml:"depth"`
	MinDuration string   `toml:"min-duration"`
	Hide        []string `toml:"hide"`
}

type analyzeConfig struct {
	Jobs  int   `toml:"jobs"`
	Cache *bool `toml:"cache"`
}

type exportConfig struct {
	Format string `toml:"format"`
}

func findApexlogToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "apexlog.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadFileConfig(startDir string) (*fileConfig, bool, error) {
	path, ok, err := findApexlogToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	// Ломаный конфиг должен падать сразу, а не в середине анализа.
	if cfg.Tree.MinDuration != "" {
		if _, err := time.ParseDuration(cfg.Tree.MinDuration); err != nil {
			return nil, true, fmt.Errorf("%s: bad [tree].min-duration: %w", path, err)
		}
	}
	switch cfg.Output.Color {
	case "", "auto", "on", "off":
	default:
		return nil, true, fmt.Errorf("%s: bad [output].color %q (expected auto|on|off)", path, cfg.Output.Color)
	}
	return &cfg, true, nil
}

// applyFileConfig feeds apexlog.toml values into flags the user left at
// their defaults. Called before flag reads by every analysis command.
func applyFileConfig(cmd *cobra.Command, startDir string) error {
	cfg, ok, err := loadFileConfig(startDir)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	set := func(name, value string) error {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.Root().PersistentFlags().Lookup(name)
		}
		if f == nil || f.Changed || value == "" {
			return nil
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("config value for --%s: %w", name, err)
		}
		return nil
	}

	if cfg.Output.Color != "" {
		if err := set("color", cfg.Output.Color); err != nil {
			return err
		}
	}
	if cfg.Output.MaxIssues > 0 {
		if err := set("max-issues", strconv.Itoa(cfg.Output.MaxIssues)); err != nil {
			return err
		}
	}

	switch cmd.Name() {
	case "tree":
		if cfg.Tree.Depth > 0 {
			if err := set("depth", strconv.Itoa(cfg.Tree.Depth)); err != nil {
				return err
			}
		}
		if err := set("min-duration", cfg.Tree.MinDuration); err != nil {
			return err
		}
		if len(cfg.Tree.Hide) > 0 {
			if err := set("hide", strings.Join(cfg.Tree.Hide, ",")); err != nil {
				return err
			}
		}
	case "analyze":
		if cfg.Analyze.Jobs > 0 {
			if err := set("jobs", strconv.Itoa(cfg.Analyze.Jobs)); err != nil {
				return err
			}
		}
		if cfg.Analyze.Cache != nil && !*cfg.Analyze.Cache {
			if err := set("no-cache", "true"); err != nil {
				return err
			}
		}
	case "export":
		if err := set("format", cfg.Export.Format); err != nil {
			return err
		}
	}
	return nil
}
