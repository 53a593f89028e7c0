package metadata

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/zhubert/tether/logger"
)

// Resolve maps a filesystem path to its work directory record.
//
// Tier 1 checks every record in store order for a direct match against its
// path and aliases; the first match wins. When the matched record's path
// differs from the input, the input becomes the new canonical path — the old
// value is not kept as an alias, so a directory flipping between two
// locations only matches the most recent one.
//
// Tier 2 runs only when no record matches: the session logs under the
// storage root are scanned for the literal path, reattaching the record
// whose subtree mentions it (see recoverFromSessions).
//
// A nil result means no record claims the path. That is a normal outcome,
// not an error; the caller decides between creating a record and reporting
// the miss.
func (s *Store) Resolve(path string) *WorkDir {
	log := logger.WithComponent("metadata")

	for _, wd := range s.WorkDirs {
		if wd.MatchesPath(path) {
			if wd.Path != path {
				log.Info("work directory moved", "id", wd.ID, "from", wd.Path, "to", path)
				wd.Path = path
			}
			return wd
		}
	}

	if wd := s.recoverFromSessions(path); wd != nil {
		return wd
	}

	log.Debug("no work directory record for path", "path", path)
	return nil
}

// recoverFromSessions walks every context.jsonl under the sessions root
// looking for one whose content mentions path or its canonical form. The
// first hit decides: the log's grandparent directory name is the work
// directory ID the path belonged to before the record was lost. An existing
// record with that ID gains the path as an alias; otherwise a new record is
// synthesized reusing the ID, because identity must follow the storage
// location rather than being minted fresh.
//
// Unreadable logs are skipped and the scan continues. This is a best-effort
// linear pass over all stored sessions — O(total sessions × log size) with
// no index — and is the most expensive operation in the system.
func (s *Store) recoverFromSessions(path string) *WorkDir {
	log := logger.WithComponent("metadata")

	needles := [][]byte{[]byte(path)}
	if resolved, err := CanonicalPath(path); err == nil && resolved != path {
		needles = append(needles, []byte(resolved))
	}

	sessionsDir := s.SessionsDir()
	workDirEntries, err := os.ReadDir(sessionsDir)
	if err != nil {
		return nil
	}

	for _, wdEntry := range workDirEntries {
		if !wdEntry.IsDir() {
			continue
		}
		workDirID := wdEntry.Name()

		sessionEntries, err := os.ReadDir(filepath.Join(sessionsDir, workDirID))
		if err != nil {
			continue
		}

		for _, sessEntry := range sessionEntries {
			if !sessEntry.IsDir() {
				continue
			}
			contextFile := filepath.Join(sessionsDir, workDirID, sessEntry.Name(), ContextFileName)

			content, err := os.ReadFile(contextFile)
			if err != nil {
				continue
			}

			if !containsAny(content, needles) {
				continue
			}

			log.Info("recovered work directory from session content",
				"path", path, "workDirID", workDirID, "sessionID", sessEntry.Name())

			if wd := s.WorkDirByID(workDirID); wd != nil {
				wd.AddAlias(path)
				return wd
			}
			return s.NewWorkDir(path, workDirID)
		}
	}

	return nil
}

func containsAny(content []byte, needles [][]byte) bool {
	for _, needle := range needles {
		if bytes.Contains(content, needle) {
			return true
		}
	}
	return false
}
