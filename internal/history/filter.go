package history

import "github.com/chopain/yomikae-sub001/internal/character"

// Filter selects a subsequence of the history. Criteria compose
// conjunctively; the zero Filter matches every entry.
type Filter struct {
	// FalseFriendsOnly keeps only entries flagged as false friends
	FalseFriendsOnly bool

	// JLPTLevel, when set, keeps only entries whose Japanese info carries
	// exactly this level. Entries without a level never match.
	JLPTLevel *int
}

func (f Filter) matches(ref character.Ref) bool {
	if f.FalseFriendsOnly && !ref.IsFalseFriend {
		return false
	}
	if f.JLPTLevel != nil {
		level, ok := ref.JLPT()
		if !ok || level != *f.JLPTLevel {
			return false
		}
	}
	return true
}

// Filtered returns a copy of the entries matching f, preserving their
// relative order.
func (s *Store) Filtered(f Filter) []character.Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]character.Ref, 0, len(s.entries))
	for _, e := range s.entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}
