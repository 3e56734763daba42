package ops

import (
	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/history"
)

// FilterInput contains parameters for the Filter operation.
type FilterInput struct {
	FalseFriendsOnly bool
	JLPTLevel        *int // 1 (hardest) through 5 (easiest)
}

// FilterOutput contains the result of the Filter operation.
type FilterOutput struct {
	Items []character.Ref `json:"items"`
	Count int             `json:"count"`
}

// Filter returns the history entries matching the criteria, recency order
// preserved. Criteria compose with AND; entries with no JLPT classification
// never match a level filter.
func Filter(store *history.Store, input FilterInput) (*FilterOutput, error) {
	if input.JLPTLevel != nil && (*input.JLPTLevel < 1 || *input.JLPTLevel > 5) {
		return nil, errors.NewInvalidRequest("jlpt_level must be between 1 and 5")
	}

	items := store.Filtered(history.Filter{
		FalseFriendsOnly: input.FalseFriendsOnly,
		JLPTLevel:        input.JLPTLevel,
	})
	return &FilterOutput{
		Items: items,
		Count: len(items),
	}, nil
}
