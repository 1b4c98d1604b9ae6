package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"segcheck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The segments and validations directories exist and are empty.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SegmentsDir = filepath.Join(base, "segments")
	cfgVal.Paths.ValidationsDir = filepath.Join(base, "validations")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Logging.Level = "error"

	for _, dir := range []string{cfgVal.Paths.SegmentsDir, cfgVal.Paths.ValidationsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThreshold sets the consensus threshold.
func WithThreshold(threshold float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Consensus.Threshold = threshold
	}
}

// WithArchive toggles run archiving.
func WithArchive(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.Enabled = enabled
	}
}

// WithHeuristics toggles the heuristic scans.
func WithHeuristics(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Heuristics.Enabled = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
