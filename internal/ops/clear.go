package ops

import "github.com/chopain/yomikae-sub001/internal/history"

// ClearOutput contains the result of the Clear operation.
type ClearOutput struct {
	Cleared int `json:"cleared"`
}

// Clear empties the lookup history. Clearing an already-empty history is a
// no-op that reports zero cleared entries.
func Clear(store *history.Store) (*ClearOutput, error) {
	cleared := store.Len()
	store.Clear()
	return &ClearOutput{Cleared: cleared}, nil
}
