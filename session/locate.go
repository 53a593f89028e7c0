package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/zhubert/tether/metadata"
)

// ValidateID rejects session identifiers that are not UUIDs.
// Callers use this gate before any store or filesystem access, so a
// malformed ID never mutates anything.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid session ID %q: expected a UUID like 123e4567-e89b-12d3-a456-426614174000", id)
	}
	return nil
}

// Location identifies where a session's log lives on disk.
type Location struct {
	WorkDirID   string
	SessionID   string
	ContextFile string

	// Registered reports whether WorkDirID has a record in the store.
	// An unregistered hit means the session is fully orphaned and the
	// caller may want to reattach the ID to a live directory.
	Registered bool
}

// Locate finds the session with the given ID. Registered work directories
// are checked first, in store order; subtrees with no record are checked
// after. Returns nil when no stored session carries the ID.
func Locate(store *metadata.Store, sessionID string) *Location {
	for _, wd := range store.WorkDirs {
		contextFile := filepath.Join(store.WorkDirSessionsDir(wd.ID), sessionID, metadata.ContextFileName)
		if fileExists(contextFile) {
			return &Location{
				WorkDirID:   wd.ID,
				SessionID:   sessionID,
				ContextFile: contextFile,
				Registered:  true,
			}
		}
	}

	wdEntries, err := os.ReadDir(store.SessionsDir())
	if err != nil {
		return nil
	}
	for _, entry := range wdEntries {
		if !entry.IsDir() {
			continue
		}
		if store.WorkDirByID(entry.Name()) != nil {
			continue // already checked above
		}
		contextFile := filepath.Join(store.SessionsDir(), entry.Name(), sessionID, metadata.ContextFileName)
		if fileExists(contextFile) {
			return &Location{
				WorkDirID:   entry.Name(),
				SessionID:   sessionID,
				ContextFile: contextFile,
				Registered:  false,
			}
		}
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
