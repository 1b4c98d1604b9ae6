package testsupport

import (
	"testing"

	"segcheck/internal/archive"
	"segcheck/internal/config"
)

// MustOpenArchive opens the run archive for tests and registers cleanup.
func MustOpenArchive(t testing.TB, cfg *config.Config) *archive.Store {
	t.Helper()

	store, err := archive.Open(cfg)
	if err != nil {
		t.Fatalf("archive.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
