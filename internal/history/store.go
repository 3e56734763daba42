// Package history implements the bounded, deduplicated lookup history at the
// center of yomikae: a most-recent-first list of character references capped
// at MaxEntries, persisted through a blob store and queryable by recency,
// filter criteria, and aggregate statistics.
package history

import (
	"log"
	"sync"

	"github.com/chopain/yomikae-sub001/internal/blob"
	"github.com/chopain/yomikae-sub001/internal/character"
)

const (
	// MaxEntries is the fixed history capacity. Adding beyond it evicts the
	// oldest (tail) entries.
	MaxEntries = 20

	// storageKey is the single blob key the serialized history lives under.
	storageKey = "lookup_history.json"
)

// Store owns the in-memory history list and keeps the persisted blob in sync.
// The in-memory list is the source of truth for the life of the process;
// persistence failures degrade durability only and are reported through the
// diagnostics sink, never surfaced to callers.
type Store struct {
	mu      sync.RWMutex
	blobs   blob.Store
	entries []character.Ref
	logf    func(format string, args ...any)
}

// Option configures a Store.
type Option func(*Store)

// WithLogf replaces the diagnostics sink used for swallowed persistence and
// decode failures. The default is log.Printf.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(s *Store) {
		if logf != nil {
			s.logf = logf
		}
	}
}

// New constructs a Store backed by blobs and loads any persisted history.
// A missing blob starts the history empty; an undecodable blob is reported
// and discarded. Construction never fails.
func New(blobs blob.Store, opts ...Option) *Store {
	s := &Store{
		blobs: blobs,
		logf:  log.Printf,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

// load restores the persisted list, normalizing anything an older build or a
// corrupted blob may have left behind. If normalization changed the list, the
// cleaned form is persisted right away.
func (s *Store) load() {
	data, ok, err := s.blobs.Get(storageKey)
	if err != nil {
		s.logf("history: load failed, starting empty: %v", err)
		return
	}
	if !ok {
		return
	}

	decoded, err := decodeSnapshot(data)
	if err != nil {
		s.logf("history: discarding undecodable snapshot, starting empty: %v", err)
		return
	}

	entries := normalize(decoded)
	s.mu.Lock()
	s.entries = entries
	if len(entries) != len(decoded) {
		s.persistLocked()
	}
	s.mu.Unlock()
}

// normalize enforces the list invariants on externally sourced entries:
// unique non-empty IDs (first occurrence wins, since front = most recent)
// and length capped at MaxEntries.
func normalize(refs []character.Ref) []character.Ref {
	out := make([]character.Ref, 0, min(len(refs), MaxEntries))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if ref.ID == "" {
			continue
		}
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}
		out = append(out, ref)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}

// Add records a lookup: any existing entry with the same ID is removed, ref
// is inserted at the front, the tail is truncated to MaxEntries, and the
// result is persisted before returning. Re-adding a character refreshes its
// position, so recency reflects the last lookup rather than the first.
func (s *Store) Add(ref character.Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(ref)
	s.persistLocked()
}

func (s *Store) addLocked(ref character.Ref) {
	s.removeLocked(ref.ID)
	s.entries = append([]character.Ref{ref}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
}

// Remove drops every entry with the given ID (at most one under the dedup
// invariant) and persists. Removing an absent ID is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(id)
	s.persistLocked()
}

func (s *Store) removeLocked(id string) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// Clear empties the history and persists the empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.entries[:0]
	s.persistLocked()
}

// Entries returns a copy of the full history, most recent first.
func (s *Store) Entries() []character.Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyLocked(len(s.entries))
}

// Recent returns a copy of the first min(limit, Len) entries. A limit of
// zero (or less) yields an empty list.
func (s *Store) Recent(limit int) []character.Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit < 0 {
		limit = 0
	}
	return s.copyLocked(min(limit, len(s.entries)))
}

// Contains reports whether an entry with the given ID is in the history.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Len returns the current history length, always in [0, MaxEntries].
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// copyLocked returns the first n entries as a fresh slice.
func (s *Store) copyLocked(n int) []character.Ref {
	out := make([]character.Ref, n)
	copy(out, s.entries[:n])
	return out
}

// persistLocked writes the current list to the blob store. Failures are
// reported and swallowed: the in-memory list stays authoritative and a
// future write may still succeed.
func (s *Store) persistLocked() {
	data, err := encodeSnapshot(s.entries)
	if err != nil {
		s.logf("history: encode failed, skipping persist: %v", err)
		return
	}
	if err := s.blobs.Set(storageKey, data); err != nil {
		s.logf("history: persist failed, in-memory state retained: %v", err)
	}
}
