package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[paths]\n" +
		"library_dir = \"" + filepath.Join(dir, "library") + "\"\n" +
		"export_dir = \"" + filepath.Join(dir, "export") + "\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when target already exists")
	}
}

func TestConfigShowReportsDefaults(t *testing.T) {
	path := writeTestConfig(t)

	out, err := runCLI(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"Default ruleset", "classic", path} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestImportListShowConvert(t *testing.T) {
	path := writeTestConfig(t)
	src := filepath.Join(t.TempDir(), "chart.json")
	payload := `{
		"info": {"title": "Aurora", "artist": "Nova", "format_version": 9},
		"difficulty": {"overall_level": 5, "drain_rate": 5, "approach_rate": 5, "velocity_multiplier": 1},
		"timeline": {"points": [{"time": 0, "beat_length": 500, "speed_multiplier": 1}]},
		"elements": [
			{"start": 0, "kind": "note"},
			{"start": 500, "duration": 1000, "kind": "hold"}
		]
	}`
	if err := os.WriteFile(src, []byte(payload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	out, err := runCLI(t, "--config", path, "import", src)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "as chart 1") {
		t.Fatalf("unexpected import output: %q", out)
	}

	out, err = runCLI(t, "--config", path, "list", "--plain")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Aurora") {
		t.Fatalf("list output missing imported chart:\n%s", out)
	}

	out, err = runCLI(t, "--config", path, "show", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Nova - Aurora") {
		t.Fatalf("show output missing title:\n%s", out)
	}

	out, err = runCLI(t, "--config", path, "convert", "1", "--ruleset", "classic", "--mod", "double-time")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(out, "converted chart 1 for classic") {
		t.Fatalf("convert output unexpected:\n%s", out)
	}
}

func TestConvertRejectsUnknownRuleset(t *testing.T) {
	path := writeTestConfig(t)

	_, err := runCLI(t, "--config", path, "convert", "1", "--ruleset", "galaxy")
	if err == nil || !strings.Contains(err.Error(), "unknown ruleset") {
		t.Fatalf("expected unknown ruleset error, got %v", err)
	}
}

func TestParseChartIDRejectsBadInput(t *testing.T) {
	for _, arg := range []string{"", "abc", "0", "-3"} {
		if _, err := parseChartID(arg); err == nil {
			t.Fatalf("expected error for %q", arg)
		}
	}
	id, err := parseChartID(" 42 ")
	if err != nil || id != 42 {
		t.Fatalf("parseChartID(42) = %d, %v", id, err)
	}
}
