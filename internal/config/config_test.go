package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"segcheck/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd := t.TempDir()
	t.Chdir(wd)
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "segcheck", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if want := filepath.Join(home, ".local", "share", "segcheck"); cfg.Paths.StateDir != want {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, want)
	}
	if !filepath.IsAbs(cfg.Paths.SegmentsDir) || !filepath.IsAbs(cfg.Paths.ValidationsDir) {
		t.Fatalf("expected absolute input dirs, got %q and %q", cfg.Paths.SegmentsDir, cfg.Paths.ValidationsDir)
	}
	if cfg.Consensus.Threshold != 0.6 {
		t.Fatalf("unexpected default threshold %v", cfg.Consensus.Threshold)
	}
	if !cfg.Discrepancy.CommentGate || cfg.Discrepancy.CommentMinLength != 5 {
		t.Fatalf("unexpected discrepancy defaults: %+v", cfg.Discrepancy)
	}
	if cfg.Report.SnippetLength != 50 || cfg.Report.Format != "text" {
		t.Fatalf("unexpected report defaults: %+v", cfg.Report)
	}
	if len(cfg.Heuristics.ChatterKeywords) != 5 {
		t.Fatalf("expected default chatter keywords, got %v", cfg.Heuristics.ChatterKeywords)
	}
	if cfg.ArchivePath() != filepath.Join(cfg.Paths.StateDir, "archive.db") {
		t.Fatalf("unexpected archive path %q", cfg.ArchivePath())
	}
}

func TestLoadCustomConfigOverrides(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "segcheck.toml")
	content := `
[paths]
segments_dir = "~/data/segments"
validations_dir = "/srv/validations"

[consensus]
threshold = 0.75

[heuristics]
chatter_keywords = [" Naam ", "naam", "", "vraag"]

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected custom path to be used, got %q exists=%v", resolved, exists)
	}
	if want := filepath.Join(home, "data", "segments"); cfg.Paths.SegmentsDir != want {
		t.Fatalf("unexpected segments dir: got %q want %q", cfg.Paths.SegmentsDir, want)
	}
	if cfg.Paths.ValidationsDir != "/srv/validations" {
		t.Fatalf("unexpected validations dir %q", cfg.Paths.ValidationsDir)
	}
	if cfg.Consensus.Threshold != 0.75 {
		t.Fatalf("unexpected threshold %v", cfg.Consensus.Threshold)
	}
	keywords := cfg.Heuristics.ChatterKeywords
	if len(keywords) != 2 || keywords[0] != "Naam" || keywords[1] != "vraag" {
		t.Fatalf("expected keywords normalized, got %v", keywords)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging settings, got %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "segcheck.toml")
	if err := os.WriteFile(path, []byte("[consensus]\nquorum = 0.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to fail")
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("SEGCHECK_SEGMENTS_DIR", dir)
	t.Setenv("SEGCHECK_THRESHOLD", "0.5")
	t.Setenv("SEGCHECK_LOG_LEVEL", "warn")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.SegmentsDir != dir {
		t.Fatalf("expected env segments dir, got %q", cfg.Paths.SegmentsDir)
	}
	if cfg.Consensus.Threshold != 0.5 {
		t.Fatalf("expected env threshold, got %v", cfg.Consensus.Threshold)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadEnvironmentRejectsBadThreshold(t *testing.T) {
	isolate(t)
	t.Setenv("SEGCHECK_THRESHOLD", "lots")
	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected unparsable threshold to fail")
	}
}

func TestValidateThresholdBounds(t *testing.T) {
	for _, threshold := range []float64{0, -0.1, 1.01} {
		cfg := config.Default()
		cfg.Consensus.Threshold = threshold
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "consensus.threshold") {
			t.Fatalf("threshold %v: expected validation error, got %v", threshold, err)
		}
	}
	cfg := config.Default()
	cfg.Consensus.Threshold = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("threshold 1 should be valid: %v", err)
	}
}

func TestValidateReportFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Report.Format = "csv"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unsupported format to fail")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	defaults := config.Default()
	if decoded.Consensus.Threshold != defaults.Consensus.Threshold {
		t.Fatalf("sample threshold %v differs from default %v", decoded.Consensus.Threshold, defaults.Consensus.Threshold)
	}
	if decoded.Report.SnippetLength != defaults.Report.SnippetLength {
		t.Fatalf("sample snippet length %d differs from default", decoded.Report.SnippetLength)
	}

	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config should load cleanly: exists=%v err=%v", exists, err)
	}
}

func TestEncodeIncludesSections(t *testing.T) {
	cfg := config.Default()
	out, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	for _, section := range []string{"[paths]", "[consensus]", "[heuristics]", "[logging]"} {
		if !strings.Contains(out, section) {
			t.Fatalf("expected %s in encoded config:\n%s", section, out)
		}
	}
}
