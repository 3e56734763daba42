package ops

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/history"
)

func writeSnapshotFile(t *testing.T, path string, refs []character.Ref) {
	t.Helper()

	snap := map[string]any{
		"version":     1,
		"snapshot_id": "01HTESTSNAPSHOT00000000000",
		"exported_at": time.Now().Unix(),
		"entries":     refs,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		t.Fatalf("Failed to encode snapshot: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to write snapshot file: %v", err)
	}
}

func TestImport_HappyPath(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)

	snapPath := filepath.Join(tmpDir, "history.json")
	writeSnapshotFile(t, snapPath, []character.Ref{
		{ID: "u6c34", Literal: "水"},
		{ID: "u706b", Literal: "火"},
	})

	output, err := Import(store, allowDir(tmpDir), ImportInput{Path: snapPath})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if output.Path != snapPath {
		t.Errorf("Path = %q, want %q", output.Path, snapPath)
	}
	if output.Entries != 2 {
		t.Errorf("Entries = %d, want 2", output.Entries)
	}
	// The snapshot's own order survives: its first entry leads.
	recent := store.Recent(2)
	if recent[0].ID != "u6c34" || recent[1].ID != "u706b" {
		t.Errorf("recent = [%s %s], want [u6c34 u706b]", recent[0].ID, recent[1].ID)
	}
}

func TestImport_MergesAheadOfExisting(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)
	store.Add(character.Ref{ID: "u6e6f", Literal: "湯"})

	snapPath := filepath.Join(tmpDir, "history.json")
	writeSnapshotFile(t, snapPath, []character.Ref{
		{ID: "u6c34", Literal: "水"},
		{ID: "u706b", Literal: "火"},
	})

	output, err := Import(store, allowDir(tmpDir), ImportInput{Path: snapPath})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if output.Entries != 3 {
		t.Fatalf("Entries = %d, want 3", output.Entries)
	}
	entries := store.Entries()
	want := []string{"u6c34", "u706b", "u6e6f"}
	for i, id := range want {
		if entries[i].ID != id {
			t.Errorf("entries[%d] = %s, want %s", i, entries[i].ID, id)
		}
	}
}

func TestImport_DeduplicatesByID(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)
	store.Add(character.Ref{ID: "u6c34", Literal: "水"})
	store.Add(character.Ref{ID: "u6e6f", Literal: "湯"})

	snapPath := filepath.Join(tmpDir, "history.json")
	writeSnapshotFile(t, snapPath, []character.Ref{
		{ID: "u6c34", Literal: "水"},
	})

	output, err := Import(store, allowDir(tmpDir), ImportInput{Path: snapPath})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if output.Entries != 2 {
		t.Fatalf("Entries = %d, want 2 (no duplicate)", output.Entries)
	}
	// The reimported entry moved back to the front.
	if store.Recent(1)[0].ID != "u6c34" {
		t.Errorf("front = %s, want u6c34", store.Recent(1)[0].ID)
	}
}

func TestImport_BareArray(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)

	// Hand-built files may skip the envelope entirely.
	snapPath := filepath.Join(tmpDir, "history.json")
	data, err := json.Marshal([]character.Ref{{ID: "u6c34", Literal: "水"}})
	if err != nil {
		t.Fatalf("Failed to encode refs: %v", err)
	}
	if err := os.WriteFile(snapPath, data, 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	output, err := Import(store, allowDir(tmpDir), ImportInput{Path: snapPath})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if output.Entries != 1 {
		t.Errorf("Entries = %d, want 1", output.Entries)
	}
}

func TestImport_MalformedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)
	store.Add(character.Ref{ID: "u6e6f", Literal: "湯"})

	snapPath := filepath.Join(tmpDir, "history.json")
	if err := os.WriteFile(snapPath, []byte("not valid json"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := Import(store, allowDir(tmpDir), ImportInput{Path: snapPath})
	if !errors.Is(err, errors.ErrDecodeFailed) {
		t.Errorf("Import should return ErrDecodeFailed, got: %v", err)
	}

	// The history is untouched on a failed import.
	if store.Len() != 1 || !store.Contains("u6e6f") {
		t.Errorf("history changed by failed import: %v", store.Entries())
	}
}

func TestImport_FileNotFound(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)

	_, err := Import(store, allowDir(tmpDir), ImportInput{Path: filepath.Join(tmpDir, "missing.json")})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Import should return ErrNotFound, got: %v", err)
	}
}

func TestImport_FileTooLarge(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)

	// The size check fires before any parsing.
	snapPath := filepath.Join(tmpDir, "big.json")
	if err := os.WriteFile(snapPath, bytes.Repeat([]byte("a"), MaxImportBytes+1), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := Import(store, allowDir(tmpDir), ImportInput{Path: snapPath})
	if !errors.Is(err, errors.ErrFileTooLarge) {
		t.Errorf("Import should return ErrFileTooLarge, got: %v", err)
	}
}

func TestImport_PathRequired(t *testing.T) {
	store := newTestStore(t)

	_, err := Import(store, allowDir(t.TempDir()), ImportInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import should return ErrInvalidRequest, got: %v", err)
	}
}

func TestImport_TruncatesToCapacity(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)

	refs := make([]character.Ref, history.MaxEntries+5)
	for i := range refs {
		refs[i] = character.Ref{
			ID:      fmt.Sprintf("u%04x", 0x4e00+i),
			Literal: string(rune(0x4e00 + i)),
		}
	}
	snapPath := filepath.Join(tmpDir, "history.json")
	writeSnapshotFile(t, snapPath, refs)

	output, err := Import(store, allowDir(tmpDir), ImportInput{Path: snapPath})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if output.Entries != history.MaxEntries {
		t.Fatalf("Entries = %d, want %d", output.Entries, history.MaxEntries)
	}
	if !store.Contains(refs[0].ID) {
		t.Error("snapshot front entry should survive truncation")
	}
	if store.Contains(refs[history.MaxEntries].ID) {
		t.Errorf("entry %s beyond capacity should be dropped", refs[history.MaxEntries].ID)
	}
}

func TestImport_SkipsEntriesWithoutID(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)

	snapPath := filepath.Join(tmpDir, "history.json")
	writeSnapshotFile(t, snapPath, []character.Ref{
		{Literal: "壊"},
		{ID: "u6c34", Literal: "水"},
	})

	output, err := Import(store, allowDir(tmpDir), ImportInput{Path: snapPath})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if output.Entries != 1 {
		t.Errorf("Entries = %d, want 1 (entry without id skipped)", output.Entries)
	}
	if !store.Contains("u6c34") {
		t.Error("valid entry should be imported")
	}
}

func TestImport_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store := newTestStore(t)
	store.Add(character.Ref{
		ID: "u6e6f", Literal: "湯", IsFalseFriend: true,
		Meanings: []string{"hot water (Japanese); soup (Chinese)"},
		Japanese: &character.JapaneseInfo{OnReadings: []string{"トウ"}, KunReadings: []string{"ゆ"}, JLPTLevel: intPtr(3)},
		Chinese:  &character.ChineseInfo{Pinyin: "tāng"},
	})
	store.Add(character.Ref{ID: "u6c34", Literal: "水"})

	exportPath := filepath.Join(tmpDir, "history.json")
	exportOut, err := Export(store, allowDir(tmpDir), ExportInput{Path: exportPath})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if exportOut.Count != 2 {
		t.Fatalf("export Count = %d, want 2", exportOut.Count)
	}

	store.Clear()
	if store.Len() != 0 {
		t.Fatal("history should be empty after clear")
	}

	importOut, err := Import(store, allowDir(tmpDir), ImportInput{Path: exportPath})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if importOut.Entries != 2 {
		t.Fatalf("import Entries = %d, want 2", importOut.Entries)
	}

	entries := store.Entries()
	if entries[0].ID != "u6c34" || entries[1].ID != "u6e6f" {
		t.Errorf("order = [%s %s], want [u6c34 u6e6f]", entries[0].ID, entries[1].ID)
	}
	restored := entries[1]
	if !restored.IsFalseFriend {
		t.Error("IsFalseFriend lost in round trip")
	}
	if level, ok := restored.JLPT(); !ok || level != 3 {
		t.Errorf("JLPT() = %d, %v, want 3, true", level, ok)
	}
	if restored.Chinese == nil || restored.Chinese.Pinyin != "tāng" {
		t.Errorf("Chinese = %v, want pinyin tāng", restored.Chinese)
	}
}
