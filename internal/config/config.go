package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input and state directory configuration.
type Paths struct {
	SegmentsDir    string `toml:"segments_dir"`
	ValidationsDir string `toml:"validations_dir"`
	StateDir       string `toml:"state_dir"`
}

// Consensus contains the quorum settings of the consensus evaluator.
type Consensus struct {
	// Threshold is the fraction of agreeing votes required for ACCEPTED or
	// REJECTED. Must be in (0, 1]. Default: 0.6
	Threshold float64 `toml:"threshold"`
}

// Discrepancy contains settings for per-record discrepancy extraction.
type Discrepancy struct {
	// CommentGate counts a record as rejected when its comment is longer
	// than CommentMinLength characters, even if every field was approved.
	CommentGate      bool `toml:"comment_gate"`
	CommentMinLength int  `toml:"comment_min_length"`
	// RequireSegment drops records whose segment metadata is unknown.
	RequireSegment bool `toml:"require_segment"`
}

// Heuristics contains the optional exploratory text scans.
type Heuristics struct {
	Enabled          bool     `toml:"enabled"`
	ChatterKeywords  []string `toml:"chatter_keywords"`
	ChatterScanChars int      `toml:"chatter_scan_chars"`
	RemovalKeywords  []string `toml:"removal_keywords"`
	CommentKeywords  []string `toml:"comment_keywords"`
	EntityScan       bool     `toml:"entity_scan"`
	// SimilarComments groups rejected comments whose token fingerprints have
	// at least this cosine similarity. Zero disables grouping.
	SimilarComments float64 `toml:"similar_comments"`
}

// Report contains rendering options.
type Report struct {
	Format             string `toml:"format"`
	SnippetLength      int    `toml:"snippet_length"`
	SampleComments     int    `toml:"sample_comments"`
	TopConcepts        int    `toml:"top_concepts"`
	IncludeUnvalidated bool   `toml:"include_unvalidated"`
}

// Archive contains configuration for the run history database.
type Archive struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File enables an additional log file under paths.state_dir.
	File bool `toml:"file"`
}

// Config encapsulates all configuration values for segcheck.
//
// Configuration sections by subsystem:
//   - Paths: input directories and the state directory (archive, logs)
//   - Consensus: threshold for the quorum rule
//   - Discrepancy: comment gate for single-record analysis
//   - Heuristics: optional keyword/entity scans over comments and text
//   - Report: output format and sampling
//   - Archive: run history recording
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Consensus   Consensus   `toml:"consensus"`
	Discrepancy Discrepancy `toml:"discrepancy"`
	Heuristics  Heuristics  `toml:"heuristics"`
	Report      Report      `toml:"report"`
	Archive     Archive     `toml:"archive"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/segcheck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and environment overrides applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/segcheck/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("segcheck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory used for the archive and log file.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	return nil
}

// ArchivePath returns the location of the run history database.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.Paths.StateDir, "archive.db")
}

// LogFilePath returns the location of the optional log file.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.StateDir, "segcheck.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}
