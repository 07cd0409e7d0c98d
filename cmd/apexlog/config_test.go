package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "apexlog.toml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write apexlog.toml: %v", err)
	}
}

// newConfigTestCmd собирает команду с теми же флагами, что и настоящие,
// но без разделяемого состояния между тестами.
func newConfigTestCmd(name string) *cobra.Command {
	root := &cobra.Command{Use: "apexlog"}
	root.PersistentFlags().String("color", "auto", "")
	root.PersistentFlags().Int("max-issues", 100, "")

	cmd := &cobra.Command{Use: name, Run: func(*cobra.Command, []string) {}}
	switch name {
	case "tree":
		cmd.Flags().Int("depth", 0, "")
		cmd.Flags().String("min-duration", "", "")
		cmd.Flags().StringSlice("hide", nil, "")
	case "analyze":
		cmd.Flags().Int("jobs", 0, "")
		cmd.Flags().Bool("no-cache", false, "")
	case "export":
		cmd.Flags().String("format", "chrome", "")
	}
	root.AddCommand(cmd)
	return cmd
}

func TestFindApexlogTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[tree]\ndepth = 4\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := findApexlogToml(nested)
	if err != nil {
		t.Fatalf("findApexlogToml: %v", err)
	}
	if !ok {
		t.Fatalf("expected config to be found from %s", nested)
	}
	if path != filepath.Join(root, "apexlog.toml") {
		t.Fatalf("path = %q, want config at %q", path, root)
	}
}

func TestLoadFileConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad duration", "[tree]\nmin-duration = \"fast\"\n", "min-duration"},
		{"bad color", "[output]\ncolor = \"rainbow\"\n", "color"},
		{"broken toml", "[tree\n", "TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tc.content)
			_, _, err := loadFileConfig(dir)
			if err == nil {
				t.Fatalf("expected error for %q", tc.content)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestApplyFileConfigFillsTreeDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[output]
color = "off"
max-issues = 7

[tree]
depth = 4
min-duration = "2ms"
hide = ["system", "debug"]
`)

	cmd := newConfigTestCmd("tree")
	if err := applyFileConfig(cmd, dir); err != nil {
		t.Fatalf("applyFileConfig: %v", err)
	}

	if got, _ := cmd.Flags().GetInt("depth"); got != 4 {
		t.Errorf("depth = %d, want 4", got)
	}
	if got, _ := cmd.Flags().GetString("min-duration"); got != "2ms" {
		t.Errorf("min-duration = %q, want 2ms", got)
	}
	if got, _ := cmd.Flags().GetStringSlice("hide"); len(got) != 2 || got[0] != "system" || got[1] != "debug" {
		t.Errorf("hide = %v, want [system debug]", got)
	}
	if got, _ := cmd.Root().PersistentFlags().GetString("color"); got != "off" {
		t.Errorf("color = %q, want off", got)
	}
	if got, _ := cmd.Root().PersistentFlags().GetInt("max-issues"); got != 7 {
		t.Errorf("max-issues = %d, want 7", got)
	}
}

func TestApplyFileConfigNeverOverridesFlags(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[tree]\ndepth = 9\n")

	cmd := newConfigTestCmd("tree")
	if err := cmd.Flags().Set("depth", "3"); err != nil {
		t.Fatalf("set depth: %v", err)
	}
	if err := applyFileConfig(cmd, dir); err != nil {
		t.Fatalf("applyFileConfig: %v", err)
	}

	if got, _ := cmd.Flags().GetInt("depth"); got != 3 {
		t.Errorf("depth = %d, want flag value 3 to win", got)
	}
}

func TestApplyFileConfigAnalyzeSection(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[analyze]\njobs = 6\ncache = false\n")

	cmd := newConfigTestCmd("analyze")
	if err := applyFileConfig(cmd, dir); err != nil {
		t.Fatalf("applyFileConfig: %v", err)
	}

	if got, _ := cmd.Flags().GetInt("jobs"); got != 6 {
		t.Errorf("jobs = %d, want 6", got)
	}
	if got, _ := cmd.Flags().GetBool("no-cache"); !got {
		t.Errorf("no-cache = false, want cache=false to disable the cache")
	}
}

func TestApplyFileConfigIgnoresForeignSections(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[tree]\ndepth = 9\n\n[export]\nformat = \"folded\"\n")

	cmd := newConfigTestCmd("export")
	if err := applyFileConfig(cmd, dir); err != nil {
		t.Fatalf("applyFileConfig: %v", err)
	}

	// Экспорт берёт только свою секцию.
	if got, _ := cmd.Flags().GetString("format"); got != "folded" {
		t.Errorf("format = %q, want folded", got)
	}
}

func TestApplyFileConfigWithoutConfigIsNoop(t *testing.T) {
	cmd := newConfigTestCmd("tree")
	if err := applyFileConfig(cmd, t.TempDir()); err != nil {
		t.Fatalf("applyFileConfig: %v", err)
	}
	if got, _ := cmd.Flags().GetInt("depth"); got != 0 {
		t.Errorf("depth = %d, want untouched default 0", got)
	}
}
