package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestClone_CopiesHistoryByteForByte(t *testing.T) {
	store := newTestStore(t)
	content := `{"role":"user","content":"first"}` + "\n" +
		`{"role":"assistant","content":"reply"}` + "\n" +
		`{"role":"user","content":"second"}` + "\n"
	src := writeSession(t, store, "u1", "11111111-1111-4111-8111-111111111111", content)

	targetPath := t.TempDir()
	newID, wd, err := Clone(store, "11111111-1111-4111-8111-111111111111", targetPath)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}

	if _, err := uuid.Parse(newID); err != nil {
		t.Errorf("clone ID %q is not a UUID", newID)
	}
	if newID == "11111111-1111-4111-8111-111111111111" {
		t.Error("clone must get a fresh session ID")
	}
	if wd.LastSessionID != newID {
		t.Errorf("LastSessionID = %q, want %q", wd.LastSessionID, newID)
	}
	if wd.Path != targetPath {
		t.Errorf("target record path = %q, want %q", wd.Path, targetPath)
	}

	cloned, err := os.ReadFile(filepath.Join(store.WorkDirSessionsDir(wd.ID), newID, "context.jsonl"))
	if err != nil {
		t.Fatalf("reading clone: %v", err)
	}
	if string(cloned) != content {
		t.Error("cloned log must be byte-identical to the source")
	}

	original, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}
	if string(original) != content {
		t.Error("source log must be untouched")
	}
}

func TestClone_ReusesTargetRecord(t *testing.T) {
	store := newTestStore(t)
	targetPath := t.TempDir()
	existing := store.NewWorkDir(targetPath, "")
	writeSession(t, store, "u1", "22222222-2222-4222-8222-222222222222", "line\n")

	_, wd, err := Clone(store, "22222222-2222-4222-8222-222222222222", targetPath)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if wd != existing {
		t.Error("clone into a known path should reuse its record")
	}
	if len(store.WorkDirs) != 1 {
		t.Errorf("store has %d records, want 1", len(store.WorkDirs))
	}
}

func TestClone_SourceNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, _, err := Clone(store, uuid.New().String(), t.TempDir()); err == nil {
		t.Error("Clone should fail for a missing session")
	}
	if len(store.WorkDirs) != 0 {
		t.Error("failed clone must not create records")
	}
}

func TestImport_SeedsNewSession(t *testing.T) {
	store := newTestStore(t)
	content := `{"role":"user","content":"exported"}` + "\n"
	exported := filepath.Join(t.TempDir(), "context.jsonl")
	if err := os.WriteFile(exported, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	targetPath := t.TempDir()
	newID, wd, err := Import(store, exported, targetPath)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	seeded, err := os.ReadFile(filepath.Join(store.WorkDirSessionsDir(wd.ID), newID, "context.jsonl"))
	if err != nil {
		t.Fatalf("reading seeded session: %v", err)
	}
	if string(seeded) != content {
		t.Error("imported log must carry the exact bytes of the given file")
	}
	if wd.LastSessionID != newID {
		t.Errorf("LastSessionID = %q, want %q", wd.LastSessionID, newID)
	}
}

func TestImport_MissingFile(t *testing.T) {
	store := newTestStore(t)

	_, _, err := Import(store, filepath.Join(t.TempDir(), "nope.jsonl"), t.TempDir())
	if err == nil {
		t.Error("Import should fail when the context file cannot be read")
	}
}

func TestPreview(t *testing.T) {
	store := newTestStore(t)
	content := `{"role":"user","content":"hello there, this is the very first user message"}` + "\n" +
		`{"role":"assistant","content":"hi"}` + "\n" +
		`{"role":"user","content":"second question"}` + "\n"
	path := writeSession(t, store, "u1", "s1", content)

	count, first := Preview(path, 20)
	if count != 2 {
		t.Errorf("user count = %d, want 2", count)
	}
	if first != "hello there, this..." {
		t.Errorf("preview = %q", first)
	}
}

func TestPreview_ListContent(t *testing.T) {
	store := newTestStore(t)
	content := `{"role":"user","content":[{"type":"text","text":"block"}]}` + "\n"
	path := writeSession(t, store, "u1", "s1", content)

	count, first := Preview(path, 200)
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
	if first == "" {
		t.Error("list-valued content should still produce a preview")
	}
}

func TestPreview_Unreadable(t *testing.T) {
	count, first := Preview(filepath.Join(t.TempDir(), "missing.jsonl"), 50)
	if count != 0 || first != "" {
		t.Errorf("Preview of missing file = (%d, %q), want (0, \"\")", count, first)
	}
}

func TestPreview_MalformedLinesIgnored(t *testing.T) {
	store := newTestStore(t)
	content := "not json at all\n" + `{"role":"user","content":"real"}` + "\n"
	path := writeSession(t, store, "u1", "s1", content)

	count, first := Preview(path, 50)
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
	if first != "real" {
		t.Errorf("preview = %q, want real", first)
	}
}
