package ops

import (
	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/history"
)

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []character.Ref `json:"items"`
	Count int             `json:"count"`

	// Capacity is the fixed history bound, so clients can show "12 of 20"
	Capacity int `json:"capacity"`
}

// List returns the complete lookup history, newest first. The history is
// bounded, so there is no pagination.
func List(store *history.Store) (*ListOutput, error) {
	items := store.Entries()
	return &ListOutput{
		Items:    items,
		Count:    len(items),
		Capacity: history.MaxEntries,
	}, nil
}
