package ops

import (
	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/history"
)

// RecentInput contains parameters for the Recent operation.
type RecentInput struct {
	Limit *int // default: 10; zero is allowed and returns nothing
}

// RecentOutput contains the result of the Recent operation.
type RecentOutput struct {
	Items []character.Ref `json:"items"`
	Count int             `json:"count"`
}

// Recent returns the most recently looked-up characters, newest first. A
// limit beyond the history length returns everything present.
func Recent(store *history.Store, input RecentInput) (*RecentOutput, error) {
	limit := DefaultRecentLimit
	if input.Limit != nil {
		limit = *input.Limit
	}
	if limit < 0 {
		return nil, errors.NewInvalidRequest("limit must not be negative")
	}

	items := store.Recent(limit)
	return &RecentOutput{
		Items: items,
		Count: len(items),
	}, nil
}
