package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/kanjidb"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // required
	Limit int    // default: 10, max: 50
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items []character.Ref `json:"items"`
	Count int             `json:"count"`
}

// Search matches characters by literal, meaning, reading, or pinyin. Exact
// literal matches rank first, then JLPT beginner levels downward. Search is
// for browsing and never touches the lookup history; only Lookup records
// entries.
func Search(ctx context.Context, database *sql.DB, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryChars {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryChars))
	}

	// Apply limit defaults and bounds
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	matches, err := kanjidb.Search(ctx, database, query, limit)
	if err != nil {
		return nil, err
	}

	items := make([]character.Ref, len(matches))
	for i, m := range matches {
		items[i] = m.Ref()
	}

	return &SearchOutput{
		Items: items,
		Count: len(items),
	}, nil
}
