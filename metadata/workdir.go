package metadata

import (
	"path/filepath"
	"slices"

	"github.com/zhubert/tether/logger"
)

// WorkDir is the persisted identity of one working directory.
//
// The ID is generated once and never recomputed from the path, so the record
// survives renames and moves of the directory it describes. CreatedAt is epoch
// seconds to keep the persisted file human-diffable.
type WorkDir struct {
	ID            string   `json:"id"`
	Path          string   `json:"path"`
	PathAliases   []string `json:"path_aliases"`
	Kaos          string   `json:"kaos"`
	LastSessionID string   `json:"last_session_id,omitempty"`
	CreatedAt     float64  `json:"created_at"`
}

// MatchesPath reports whether path identifies this work directory.
//
// It checks, in order: the current path, the recorded aliases, and finally
// the canonical form of path (absolute, symlinks resolved) against both.
// A path that cannot be canonicalized (missing, permission denied) simply
// falls back to the first two checks.
func (w *WorkDir) MatchesPath(path string) bool {
	if w.Path == path {
		return true
	}
	if slices.Contains(w.PathAliases, path) {
		return true
	}

	resolved, err := CanonicalPath(path)
	if err != nil {
		return false
	}
	if resolved == w.Path {
		return true
	}
	return slices.Contains(w.PathAliases, resolved)
}

// AddAlias records path as a former location of this work directory.
// The current path and existing aliases are never duplicated.
// Reports whether the alias was added.
func (w *WorkDir) AddAlias(path string) bool {
	if path == w.Path || slices.Contains(w.PathAliases, path) {
		return false
	}
	w.PathAliases = append(w.PathAliases, path)
	logger.WithComponent("metadata").Info("added path alias", "id", w.ID, "path", path)
	return true
}

// CanonicalPath resolves path to its canonical form: absolute, relative
// segments removed, symlinks followed. The path must exist.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
