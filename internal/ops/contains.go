package ops

import "github.com/chopain/yomikae-sub001/internal/history"

// ContainsInput contains parameters for the Contains operation.
// Exactly one of ID or Literal must be given.
type ContainsInput struct {
	ID      string
	Literal string
}

// ContainsOutput contains the result of the Contains operation.
type ContainsOutput struct {
	ID        string `json:"id"`
	Contained bool   `json:"contained"`
}

// Contains reports whether a character is currently in the lookup history.
func Contains(store *history.Store, input ContainsInput) (*ContainsOutput, error) {
	id, err := ResolveCharacterID(input.ID, input.Literal)
	if err != nil {
		return nil, err
	}

	return &ContainsOutput{
		ID:        id,
		Contained: store.Contains(id),
	}, nil
}
