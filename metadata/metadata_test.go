package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zhubert/tether/logger"
	"github.com/zhubert/tether/paths"
)

// newTestStore returns an empty store bound to a temp root, with HOME
// pointed at a temp directory so incidental logging stays out of the real
// filesystem.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	paths.Reset()
	logger.Reset()
	t.Cleanup(func() {
		logger.Reset()
		paths.Reset()
	})

	store, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store
}

// writeSession creates <root>/sessions/<workDirID>/<sessionID>/context.jsonl
// with the given content and returns the file path.
func writeSession(t *testing.T, store *Store, workDirID, sessionID, content string) string {
	t.Helper()
	dir := filepath.Join(store.WorkDirSessionsDir(workDirID), sessionID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, ContextFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
