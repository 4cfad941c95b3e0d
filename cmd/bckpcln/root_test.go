package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/raoulx24/bckpcln/internal/config"
)

// execute runs the root command with args and fresh flag values.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	for _, fs := range []*pflag.FlagSet{rootCmd.Flags(), rootCmd.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// fixture creates four daily snapshots of 1 KiB each.
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{
		"2024-01-01_0000_00",
		"2024-01-02_0000_00",
		"2024-01-03_0000_00",
		"2024-01-04_0000_00",
	} {
		p := filepath.Join(dir, name)
		if err := os.Mkdir(p, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(p, "dump"), make([]byte, 1024), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRoot_Explain(t *testing.T) {
	dir := fixture(t)

	out, _, err := execute(t, "-d", dir, "-m", "2k")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	first := strings.Index(out, "2024-01-02_0000_00")
	second := strings.Index(out, "2024-01-03_0000_00")
	if first < 0 || second < first {
		t.Errorf("unexpected eviction order:\n%s", out)
	}
	for _, want := range []string{
		"Backup directory to clean up: " + dir,
		"Max size: 2 KiB",
		"Perform delete: No, just explain",
		"Cumulated size of all backup files: 4 KiB",
		"New cumulated size of all backup files : 2 KiB",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2024-01-01_0000_00\" would") || strings.Contains(out, "2024-01-04_0000_00\" would") {
		t.Errorf("endpoints must be kept:\n%s", out)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 4 {
		t.Errorf("explain removed snapshots: %d left", len(entries))
	}
}

func TestRoot_DeleteForced(t *testing.T) {
	dir := fixture(t)
	metricsPath := filepath.Join(t.TempDir(), "bckpcln.prom")

	if _, _, err := execute(t, "-d", dir, "-m", "3k", "--delete", "-f", "--metrics-file", metricsPath); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "2024-01-02_0000_00")); !os.IsNotExist(err) {
		t.Errorf("2024-01-02_0000_00 should be deleted: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Errorf("%d snapshots left, want 3", len(entries))
	}

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics file missing: %v", err)
	}
	if !strings.Contains(string(data), "bckpcln_freed_bytes 1024") {
		t.Errorf("unexpected metrics:\n%s", data)
	}
}

func TestRoot_ArgumentErrors(t *testing.T) {
	dir := fixture(t)

	_, _, err := execute(t, "-d", dir, "-m", "2k", "--delete", "--move", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "only one argument is allowed: move or delete") {
		t.Errorf("expected conflict error, got %v", err)
	}

	_, _, err = execute(t, "-d", dir, "-m", "12345")
	if !strings.Contains(errString(err), "not a value") {
		t.Errorf("expected size error, got %v", err)
	}

	_, _, err = execute(t, "-d", dir)
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "maxSize" {
		t.Errorf("expected missing maxSize error, got %v", err)
	}
}

func TestRoot_DiscoveryError(t *testing.T) {
	dir := fixture(t)
	if err := os.Mkdir(filepath.Join(dir, "random_name"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "-d", dir, "-m", "1k", "--delete", "-f")
	if err == nil || !strings.Contains(err.Error(), "random_name") {
		t.Fatalf("expected discovery error, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 5 {
		t.Errorf("nothing may be deleted after a discovery error")
	}
}

func TestRoot_ConfigFileWithOverride(t *testing.T) {
	dir := fixture(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "directory: " + dir + "\nmaxSize: 1G\nlist: true\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "--config", cfgPath, "-m", "3k")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !strings.Contains(out, "Max size: 3 KiB") {
		t.Errorf("flag should override the file:\n%s", out)
	}
	if !strings.Contains(out, "Backups folder: ") {
		t.Errorf("list from the file should apply:\n%s", out)
	}
	if !strings.Contains(out, "would free 1 KiB") {
		t.Errorf("expected one eviction:\n%s", out)
	}
}

func TestBuildConfig_DefaultsToWorkingDirectory(t *testing.T) {
	dir := fixture(t)
	t.Chdir(dir)

	out, _, err := execute(t, "-m", "1G")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	wd, _ := os.Getwd()
	if !strings.Contains(out, "Backup directory to clean up: "+wd) {
		t.Errorf("expected the working directory:\n%s", out)
	}
	if !strings.Contains(out, "nothing to do") {
		t.Errorf("4 KiB fits in 1 GiB:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !strings.HasPrefix(out, "bckpcln "+Version) {
		t.Errorf("unexpected output: %q", out)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
