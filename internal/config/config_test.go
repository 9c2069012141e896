package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"seconds", "2s", 2 * time.Second, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Parse.Grammar != "^0.3" {
		t.Errorf("Parse.Grammar = %v, want ^0.3", cfg.Parse.Grammar)
	}
	if len(cfg.Parse.Extensions) != 1 || cfg.Parse.Extensions[0] != ".sus" {
		t.Errorf("Parse.Extensions = %v, want [.sus]", cfg.Parse.Extensions)
	}
	if cfg.Output.Format != "sexp" {
		t.Errorf("Output.Format = %v, want sexp", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Errorf("Output.Color = false, want true")
	}
	if cfg.Check.Jobs != runtime.GOMAXPROCS(0) {
		t.Errorf("Check.Jobs = %v, want GOMAXPROCS", cfg.Check.Jobs)
	}
	if cfg.Watch.Debounce.Duration != 100*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 100ms", cfg.Watch.Debounce.Duration)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %v, want warn", cfg.Log.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/sus-parse.toml")
	if err == nil {
		t.Error("Load() expected error for non-existent file")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sus-parse.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
[parse]
grammar = ">= 0.3, < 1"
extensions = [".sus", ".sv.sus"]
trivia = true

[output]
format = "json"
color = false

[check]
jobs = 3
warnings_as_errors = true

[watch]
debounce = "250ms"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Parse.Grammar != ">= 0.3, < 1" || !cfg.Parse.Trivia {
		t.Errorf("unexpected parse section %+v", cfg.Parse)
	}
	if len(cfg.Parse.Extensions) != 2 {
		t.Errorf("Parse.Extensions = %v", cfg.Parse.Extensions)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color {
		t.Errorf("unexpected output section %+v", cfg.Output)
	}
	if cfg.Check.Jobs != 3 || !cfg.Check.WarningsAsErrors {
		t.Errorf("unexpected check section %+v", cfg.Check)
	}
	if cfg.Watch.Debounce.Duration != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v", cfg.Watch.Debounce.Duration)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", level)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[output]\nformat = \"yaml\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != "yaml" {
		t.Errorf("Output.Format = %v, want yaml", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Errorf("Output.Color lost its default")
	}
	if cfg.Parse.Extensions[0] != ".sus" || cfg.Log.Level != "warn" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_MalformedToml(t *testing.T) {
	_, err := Load(writeConfig(t, "[parse\ngrammar = "))
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Fatalf("expected parse failure, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"unsatisfied grammar", func(c *Config) { c.Parse.Grammar = ">= 1.0" }, "does not satisfy"},
		{"bad constraint", func(c *Config) { c.Parse.Grammar = "not a version" }, "invalid constraint"},
		{"extension without dot", func(c *Config) { c.Parse.Extensions = []string{"sus"} }, "must start with a dot"},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"no jobs", func(c *Config) { c.Check.Jobs = -1 }, "check.jobs"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce.Duration = -time.Second }, "watch.debounce"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadDefault_UsesEnvironment(t *testing.T) {
	path := writeConfig(t, "[check]\njobs = 7\n")
	t.Setenv(EnvVar, path)

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Check.Jobs != 7 {
		t.Errorf("Check.Jobs = %v, want 7", cfg.Check.Jobs)
	}
}

func TestLoadDefault_FallsBackToDefault(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Output.Format != "sexp" {
		t.Errorf("expected default config, got %+v", cfg.Output)
	}
}
