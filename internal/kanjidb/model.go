package kanjidb

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/chopain/yomikae-sub001/internal/character"
)

// Character is a dictionary row. Nullable columns map to pointer fields.
type Character struct {
	// ID is derived from the literal's codepoints (see CharacterID), so the
	// same character keeps the same identity across installs and reimports
	ID string

	// Literal is the character or compound itself, unique per row
	Literal string

	// Meanings are English glosses (stored as JSON in DB)
	Meanings []string

	// OnReadings and KunReadings are stored as JSON in DB
	OnReadings  []string
	KunReadings []string

	// Pinyin is nil for kokuji and other characters with no Chinese reading
	Pinyin *string

	// JLPTLevel is nil for characters outside the JLPT lists
	JLPTLevel *int

	// FalseFriend marks characters whose meaning diverges between Chinese
	// and Japanese usage
	FalseFriend bool

	// Strokes is nil when unknown
	Strokes *int

	// CreatedAt and UpdatedAt are Unix timestamps
	CreatedAt int64
	UpdatedAt int64
}

// CharacterID derives the stable row ID from a literal: one lowercase hex
// codepoint per rune, joined with dashes (水 -> u6c34, 手紙 -> u624b-u7d19).
func CharacterID(literal string) string {
	parts := make([]string, 0, utf8.RuneCountInString(literal))
	for _, r := range literal {
		parts = append(parts, fmt.Sprintf("u%04x", r))
	}
	return strings.Join(parts, "-")
}

// Ref converts a dictionary row to the character ref handed to the history
// and the tool surfaces. The nested Japanese and Chinese records are built
// only when the row carries data for them.
func (c *Character) Ref() character.Ref {
	ref := character.Ref{
		ID:            c.ID,
		Literal:       c.Literal,
		Meanings:      c.Meanings,
		IsFalseFriend: c.FalseFriend,
	}

	if len(c.OnReadings) > 0 || len(c.KunReadings) > 0 || c.JLPTLevel != nil {
		info := &character.JapaneseInfo{
			OnReadings:  c.OnReadings,
			KunReadings: c.KunReadings,
		}
		if c.JLPTLevel != nil {
			level := *c.JLPTLevel
			info.JLPTLevel = &level
		}
		ref.Japanese = info
	}

	if c.Pinyin != nil {
		ref.Chinese = &character.ChineseInfo{Pinyin: *c.Pinyin}
	}

	return ref
}
