package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/history"
	"github.com/chopain/yomikae-sub001/internal/kanjidb"
)

// LookupInput contains parameters for the Lookup operation.
type LookupInput struct {
	Query    string // required: literal, character id, or search term
	Remember *bool  // default: true (nil means default)
}

// LookupOutput contains the result of the Lookup operation.
type LookupOutput struct {
	Character  character.Ref `json:"character"`
	Remembered bool          `json:"remembered"`
}

// Lookup resolves a single character and, unless Remember is explicitly
// false, records the hit at the front of the lookup history.
func Lookup(ctx context.Context, database *sql.DB, store *history.Store, input LookupInput) (*LookupOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	c, err := resolveCharacter(ctx, database, query)
	if err != nil {
		return nil, err
	}
	ref := c.Ref()

	remember := true
	if input.Remember != nil {
		remember = *input.Remember
	}
	if remember {
		store.Add(ref)
	}

	return &LookupOutput{
		Character:  ref,
		Remembered: remember,
	}, nil
}

// resolveCharacter tries the exact literal, then the character id, then falls
// back to the best search match.
func resolveCharacter(ctx context.Context, database *sql.DB, query string) (*kanjidb.Character, error) {
	c, err := kanjidb.GetByLiteral(database, query)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	c, err = kanjidb.GetByID(database, query)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	matches, err := kanjidb.Search(ctx, database, query, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.NewNotFound(query)
	}
	return matches[0], nil
}
