package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/zhubert/tether/logger"
	"github.com/zhubert/tether/metadata"
)

// Clone copies an existing session's entire log, byte for byte, into a fresh
// session under the work directory that owns targetPath, resolving or
// creating that record as needed. The owning record's LastSessionID is set
// to the new session. The store is mutated but not saved; that is the
// caller's decision.
//
// Returns the new session ID and the target record.
func Clone(store *metadata.Store, sessionID, targetPath string) (string, *metadata.WorkDir, error) {
	loc := Locate(store, sessionID)
	if loc == nil {
		return "", nil, fmt.Errorf("session %s not found", sessionID)
	}

	wd := store.Resolve(targetPath)
	if wd == nil {
		wd = store.NewWorkDir(targetPath, "")
	}

	newID := uuid.New().String()
	if err := seedSession(store, wd.ID, newID, loc.ContextFile); err != nil {
		return "", nil, err
	}
	wd.LastSessionID = newID

	logger.WithComponent("session").Info("cloned session",
		"source", sessionID, "clone", newID, "workDirID", wd.ID)
	return newID, wd, nil
}

// Import seeds a brand-new session under targetPath's work directory from an
// arbitrary context file, such as one exported from another machine. As with
// Clone, the record's LastSessionID is updated and the caller saves.
func Import(store *metadata.Store, contextFile, targetPath string) (string, *metadata.WorkDir, error) {
	wd := store.Resolve(targetPath)
	if wd == nil {
		wd = store.NewWorkDir(targetPath, "")
	}

	newID := uuid.New().String()
	if err := seedSession(store, wd.ID, newID, contextFile); err != nil {
		return "", nil, err
	}
	wd.LastSessionID = newID

	logger.WithComponent("session").Info("imported session",
		"from", contextFile, "session", newID, "workDirID", wd.ID)
	return newID, wd, nil
}

// seedSession creates the directory for a new session and fills its context
// log with the content of src.
func seedSession(store *metadata.Store, workDirID, sessionID, src string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read context file %s: %w", src, err)
	}

	dir := filepath.Join(store.WorkDirSessionsDir(workDirID), sessionID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}

	dst := filepath.Join(dir, metadata.ContextFileName)
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write context file %s: %w", dst, err)
	}
	return nil
}
