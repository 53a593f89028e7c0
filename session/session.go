package session

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/zhubert/tether/metadata"
)

// maxLineSize bounds a single log line during scanning. Tool-call payloads
// can get large.
const maxLineSize = 10 * 1024 * 1024

// Entry describes one stored session, derived from disk at read time.
// Nothing here is persisted; the orphaned flag in particular is recomputed
// on every enumeration.
type Entry struct {
	WorkDirID    string
	WorkDirPath  string // empty when no record claims the subtree
	SessionID    string
	Orphaned     bool
	Size         int64
	UpdatedAt    time.Time
	MessageCount int
}

// ListAll returns every session physically present under the store's
// sessions root, sorted by last update, newest first.
//
// Sessions under a registered work directory are orphaned exactly when the
// directory's recorded path no longer exists. Subtrees whose ID matches no
// record are always orphaned, with an unknown path. Enumeration is total:
// unreadable logs degrade to zero counts instead of dropping the entry.
func ListAll(store *metadata.Store) []Entry {
	var entries []Entry
	registered := make(map[string]bool)

	for _, wd := range store.WorkDirs {
		registered[wd.ID] = true
		orphaned := !pathExists(wd.Path)
		entries = append(entries, readWorkDirSessions(store, wd.ID, wd.Path, orphaned)...)
	}

	// Subtrees nothing in the store claims.
	if wdEntries, err := os.ReadDir(store.SessionsDir()); err == nil {
		for _, entry := range wdEntries {
			if !entry.IsDir() || registered[entry.Name()] {
				continue
			}
			entries = append(entries, readWorkDirSessions(store, entry.Name(), "", true)...)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries
}

// readWorkDirSessions collects entries for every session directory under one
// work directory's storage subtree. Only directories containing a context
// log count as sessions.
func readWorkDirSessions(store *metadata.Store, workDirID, workDirPath string, orphaned bool) []Entry {
	dir := store.WorkDirSessionsDir(workDirID)
	sessionDirs, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, sess := range sessionDirs {
		if !sess.IsDir() {
			continue
		}
		contextFile := filepath.Join(dir, sess.Name(), metadata.ContextFileName)
		info, err := os.Stat(contextFile)
		if err != nil {
			continue
		}

		entries = append(entries, Entry{
			WorkDirID:    workDirID,
			WorkDirPath:  workDirPath,
			SessionID:    sess.Name(),
			Orphaned:     orphaned,
			Size:         info.Size(),
			UpdatedAt:    info.ModTime(),
			MessageCount: countLines(contextFile),
		})
	}
	return entries
}

// countLines returns the number of lines in the log, or zero when it cannot
// be read.
func countLines(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		count++
	}
	return count
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
