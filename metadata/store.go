package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zhubert/tether/logger"
)

const (
	metadataFileName = "metadata.json"
	sessionsDirName  = "sessions"

	// ContextFileName is the message log inside each session directory.
	// One JSON object per line; this package treats it as an opaque,
	// line-countable, substring-searchable blob.
	ContextFileName = "context.jsonl"
)

// Store is the full work-directory record set plus global settings.
//
// It is loaded wholesale from <root>/metadata.json by Load and written back
// wholesale by Save; there is no partial update and no merge with concurrent
// writers. WorkDirs is insertion-ordered and the order matters: resolution
// scans it front to back and the first match wins.
type Store struct {
	WorkDirs []*WorkDir `json:"work_dirs"`
	Thinking bool       `json:"thinking"`

	root        string
	environment string
}

// Load reads the store persisted under root.
//
// A missing metadata file yields an empty store bound to root. Any other read
// or parse failure propagates — a corrupt store file aborts the invocation
// rather than silently losing records. Records persisted without an ID (the
// legacy format keyed purely by path) are assigned a fresh one here; the
// upgrade reaches disk on the next Save.
func Load(root string) (*Store, error) {
	log := logger.WithComponent("metadata")
	filePath := filepath.Join(root, metadataFileName)

	store := &Store{
		WorkDirs:    []*WorkDir{},
		root:        root,
		environment: "local",
	}

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		log.Debug("no metadata file, starting empty", "path", filePath)
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file %s: %w", filePath, err)
	}

	if err := json.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file %s: %w", filePath, err)
	}
	if store.WorkDirs == nil {
		store.WorkDirs = []*WorkDir{}
	}

	for _, wd := range store.WorkDirs {
		if wd.PathAliases == nil {
			wd.PathAliases = []string{}
		}
		if wd.ID == "" {
			wd.ID = uuid.New().String()
			log.Info("assigned id to legacy work directory", "id", wd.ID, "path", wd.Path)
		}
	}

	return store, nil
}

// Save writes the entire store to <root>/metadata.json, replacing whatever is
// there. Two concurrent invocations race and the later Save wins; nothing
// detects the overwrite.
func (s *Store) Save() error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", s.root, err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	filePath := filepath.Join(s.root, metadataFileName)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file %s: %w", filePath, err)
	}

	logger.WithComponent("metadata").Debug("saved metadata", "path", filePath, "workDirs", len(s.WorkDirs))
	return nil
}

// Root returns the storage root this store is bound to.
func (s *Store) Root() string {
	return s.root
}

// SessionsDir returns the directory holding every work directory's session
// subtree.
func (s *Store) SessionsDir() string {
	return filepath.Join(s.root, sessionsDirName)
}

// WorkDirSessionsDir returns the storage location for the given work
// directory ID. Sessions are keyed by ID, not by path, so this location is
// stable even when the directory itself moves.
func (s *Store) WorkDirSessionsDir(id string) string {
	return filepath.Join(s.root, sessionsDirName, id)
}

// SetEnvironment sets the environment tag stamped onto newly created records.
func (s *Store) SetEnvironment(env string) {
	if env != "" {
		s.environment = env
	}
}

// WorkDirByID returns the record with the given ID, or nil.
func (s *Store) WorkDirByID(id string) *WorkDir {
	for _, wd := range s.WorkDirs {
		if wd.ID == id {
			return wd
		}
	}
	return nil
}

// NewWorkDir registers a record for path.
//
// When desiredID is non-empty and a record with that ID already exists, the
// existing record's path is updated and the same record is returned — the
// merge case used when reattaching a recovered orphan ID to the current
// directory. Otherwise a new record is appended, reusing desiredID when given
// and minting a fresh ID when not. Repeated calls with the same desiredID
// never create duplicates.
func (s *Store) NewWorkDir(path, desiredID string) *WorkDir {
	log := logger.WithComponent("metadata")

	if desiredID != "" {
		if wd := s.WorkDirByID(desiredID); wd != nil {
			wd.Path = path
			log.Info("reusing existing work directory record", "id", desiredID, "path", path)
			return wd
		}
	}

	id := desiredID
	if id == "" {
		id = uuid.New().String()
	}

	wd := &WorkDir{
		ID:          id,
		Path:        path,
		PathAliases: []string{},
		Kaos:        s.environment,
		CreatedAt:   epochSeconds(time.Now()),
	}
	s.WorkDirs = append(s.WorkDirs, wd)
	log.Info("created work directory record", "id", wd.ID, "path", path)
	return wd
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}
