package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/chopain/yomikae-sub001/internal/analyze"
	"github.com/chopain/yomikae-sub001/internal/article"
	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/history"
	"github.com/chopain/yomikae-sub001/internal/kanjidb"
)

// ScanInput contains parameters for the Scan operation.
// Exactly one of Text or URL must be given.
type ScanInput struct {
	Text     string // inline text to scan
	URL      string // page to fetch and scan instead
	Remember bool   // record every hit in the lookup history
}

// ScanOutput contains the result of the Scan operation.
type ScanOutput struct {
	Source     string          `json:"source"`          // "text" or the fetched URL
	Title      string          `json:"title,omitempty"` // article title in URL mode
	Characters []character.Ref `json:"characters"`
	Count      int             `json:"count"`
	Remembered int             `json:"remembered"`
}

// Scan finds the known dictionary characters in a piece of text, or in the
// readable content of a web page. Candidates come from morphological
// analysis, so compounds like 手紙 are probed whole before their parts. Hits
// come back in first-appearance order and enter the history only when
// Remember is set.
func Scan(ctx context.Context, database *sql.DB, store *history.Store, analyzer *analyze.Analyzer, fetcher *article.Fetcher, input ScanInput) (*ScanOutput, error) {
	hasText := strings.TrimSpace(input.Text) != ""
	hasURL := strings.TrimSpace(input.URL) != ""
	if hasText == hasURL {
		return nil, errors.NewInvalidRequest("must specify either text or url")
	}

	text := input.Text
	out := &ScanOutput{Source: "text"}
	if hasURL {
		art, err := fetcher.Fetch(ctx, strings.TrimSpace(input.URL))
		if err != nil {
			return nil, err
		}
		text = art.Text
		out.Source = art.URL
		out.Title = art.Title
	}

	if utf8.RuneCountInString(text) > MaxScanChars {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("text exceeds maximum length of %d characters", MaxScanChars))
	}

	seen := make(map[string]bool)
	for _, key := range analyzer.LookupKeys(text) {
		c, err := kanjidb.GetByLiteral(database, key)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		ref := c.Ref()
		out.Characters = append(out.Characters, ref)
		if input.Remember {
			store.Add(ref)
			out.Remembered++
		}
	}

	if out.Characters == nil {
		out.Characters = []character.Ref{}
	}
	out.Count = len(out.Characters)
	return out, nil
}
