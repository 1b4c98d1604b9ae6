package config

const (
	defaultSegmentsDir       = "./segments"
	defaultValidationsDir    = "./validations"
	defaultStateDir          = "~/.local/share/segcheck"
	defaultThreshold         = 0.6
	defaultCommentMinLength  = 5
	defaultChatterScanChars  = 100
	defaultReportFormat      = "text"
	defaultSnippetLength     = 50
	defaultSampleComments    = 3
	defaultTopConcepts       = 3
	defaultSimilarComments   = 0.8
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultCommentGate       = true
	defaultHeuristicsEnabled = true
	defaultEntityScan        = true
	defaultArchiveEnabled    = true
)

var (
	defaultChatterKeywords = []string{"naam", "geboren", "band loopt", "snuift", "vraag"}
	defaultRemovalKeywords = []string{"introductie", "intro", "niets", "inhoud"}
	defaultCommentKeywords = []string{"intro", "niet relevant", "onbelangrijk", "dubbel", "fout"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SegmentsDir:    defaultSegmentsDir,
			ValidationsDir: defaultValidationsDir,
			StateDir:       defaultStateDir,
		},
		Consensus: Consensus{
			Threshold: defaultThreshold,
		},
		Discrepancy: Discrepancy{
			CommentGate:      defaultCommentGate,
			CommentMinLength: defaultCommentMinLength,
		},
		Heuristics: Heuristics{
			Enabled:          defaultHeuristicsEnabled,
			ChatterKeywords:  append([]string(nil), defaultChatterKeywords...),
			ChatterScanChars: defaultChatterScanChars,
			RemovalKeywords:  append([]string(nil), defaultRemovalKeywords...),
			CommentKeywords:  append([]string(nil), defaultCommentKeywords...),
			EntityScan:       defaultEntityScan,
			SimilarComments:  defaultSimilarComments,
		},
		Report: Report{
			Format:         defaultReportFormat,
			SnippetLength:  defaultSnippetLength,
			SampleComments: defaultSampleComments,
			TopConcepts:    defaultTopConcepts,
		},
		Archive: Archive{
			Enabled: defaultArchiveEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
