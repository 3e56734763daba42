package ops

import "github.com/chopain/yomikae-sub001/internal/history"

// RemoveInput contains parameters for the Remove operation.
// Exactly one of ID or Literal must be given.
type RemoveInput struct {
	ID      string
	Literal string
}

// RemoveOutput contains the result of the Remove operation.
type RemoveOutput struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

// Remove drops one entry from the lookup history. Removing an entry that is
// not present succeeds with Removed false; either way the entry is absent
// afterwards.
func Remove(store *history.Store, input RemoveInput) (*RemoveOutput, error) {
	id, err := ResolveCharacterID(input.ID, input.Literal)
	if err != nil {
		return nil, err
	}

	present := store.Contains(id)
	store.Remove(id)

	return &RemoveOutput{
		ID:      id,
		Removed: present,
	}, nil
}
