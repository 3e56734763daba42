package history

import "github.com/chopain/yomikae-sub001/internal/character"

// Stats summarizes the current history. It is recomputed on every call and
// never persisted.
type Stats struct {
	// TotalLookups is the history length
	TotalLookups int `json:"total_lookups"`

	// UniqueCharacters counts distinct IDs. The dedup invariant makes it
	// equal to TotalLookups, but it is recounted independently rather than
	// assumed.
	UniqueCharacters int `json:"unique_characters"`

	// MostRecent is the front entry, nil when the history is empty. The
	// history keeps no per-character frequency, so recency stands in for
	// "most looked up".
	MostRecent *character.Ref `json:"most_recent,omitempty"`

	// FalseFriends counts entries flagged as false friends
	FalseFriends int `json:"false_friends"`

	// JLPTDistribution maps JLPT level to entry count. Levels with no
	// entries are absent, not zero; entries without a level are excluded.
	JLPTDistribution map[int]int `json:"jlpt_distribution"`
}

// Statistics computes fresh Stats from the current history.
func (s *Store) Statistics() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalLookups:     len(s.entries),
		JLPTDistribution: make(map[int]int),
	}

	unique := make(map[string]struct{}, len(s.entries))
	for _, e := range s.entries {
		unique[e.ID] = struct{}{}
		if e.IsFalseFriend {
			stats.FalseFriends++
		}
		if level, ok := e.JLPT(); ok {
			stats.JLPTDistribution[level]++
		}
	}
	stats.UniqueCharacters = len(unique)

	if len(s.entries) > 0 {
		front := s.entries[0]
		stats.MostRecent = &front
	}
	return stats
}
