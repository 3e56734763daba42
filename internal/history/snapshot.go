package history

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/errors"
)

const snapshotVersion = 1

// snapshot is the serialized history form, shared by the persisted blob and
// user-facing exports. Decoding is tolerant of field presence so snapshots
// written by other builds stay importable.
type snapshot struct {
	Version    int             `json:"version"`
	SnapshotID string          `json:"snapshot_id,omitempty"`
	ExportedAt int64           `json:"exported_at,omitempty"`
	Entries    []character.Ref `json:"entries"`
}

func encodeSnapshot(entries []character.Ref) ([]byte, error) {
	snap := snapshot{
		Version:    snapshotVersion,
		SnapshotID: newSnapshotID(),
		ExportedAt: time.Now().Unix(),
		Entries:    entries,
	}
	if snap.Entries == nil {
		snap.Entries = []character.Ref{}
	}
	return json.MarshalIndent(&snap, "", "  ")
}

// decodeSnapshot accepts the versioned envelope or, for hand-built files, a
// bare array of character refs.
func decodeSnapshot(data []byte) ([]character.Ref, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err == nil {
		if snap.Version != 0 && snap.Version != snapshotVersion {
			return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
		}
		if snap.Entries != nil {
			return snap.Entries, nil
		}
		if snap.Version == snapshotVersion {
			return []character.Ref{}, nil
		}
		return nil, fmt.Errorf("no history entries present")
	}

	var refs []character.Ref
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("not a history snapshot: %w", err)
	}
	return refs, nil
}

// newSnapshotID generates a ULID naming one serialized snapshot.
func newSnapshotID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ExportSnapshot serializes the current history as pretty-printed JSON for
// portability. Encoding well-formed state should never fail; if it does, the
// failure is reported through the diagnostics sink and returned without
// disturbing the store.
func (s *Store) ExportSnapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := encodeSnapshot(s.entries)
	if err != nil {
		s.logf("history: export encode failed: %v", err)
		return nil, errors.NewInternal(err)
	}
	return data, nil
}

// ImportSnapshot merges a previously exported snapshot into the history.
// A decode failure leaves the history untouched; that is the only error
// returned. On success the snapshot's own ordering wins the front of the
// merged list: entries are replayed through add in reverse order, so the
// snapshot's first (most recent) entry lands at position 0, deduplicated
// against existing entries by ID and subject to normal capacity truncation.
// Entries that vanish to truncation do not fail the import.
func (s *Store) ImportSnapshot(data []byte) error {
	imported, err := decodeSnapshot(data)
	if err != nil {
		s.logf("history: import rejected: %v", err)
		return errors.NewDecodeFailed("history snapshot", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(imported) - 1; i >= 0; i-- {
		if imported[i].ID == "" {
			s.logf("history: skipping imported entry %d: empty id", i)
			continue
		}
		s.addLocked(imported[i])
	}
	s.persistLocked()
	return nil
}
