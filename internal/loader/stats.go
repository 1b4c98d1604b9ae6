package loader

// Stats counts what a load pass read and skipped.
// Entries counts decoded entries; skipped entries are counted separately.
type Stats struct {
	Files          int `json:"files" yaml:"files"`
	FilesSkipped   int `json:"files_skipped" yaml:"files_skipped"`
	Entries        int `json:"entries" yaml:"entries"`
	EntriesSkipped int `json:"entries_skipped" yaml:"entries_skipped"`
}

// Skipped returns the total number of skipped files and entries.
func (s Stats) Skipped() int {
	return s.FilesSkipped + s.EntriesSkipped
}
