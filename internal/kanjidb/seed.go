package kanjidb

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/chopain/yomikae-sub001/internal/errors"
)

// seedData is the starter dictionary: common JLPT kanji plus well-known
// Chinese-Japanese false friends, loaded on first run.
//
//go:embed seed_characters.json
var seedData []byte

// CharacterRecord is one entry in a character list file. The same format is
// used by the embedded seed and by user-supplied import-dict files.
type CharacterRecord struct {
	ID          string   `json:"id,omitempty"`
	Literal     string   `json:"literal"`
	Meanings    []string `json:"meanings,omitempty"`
	OnReadings  []string `json:"on_readings,omitempty"`
	KunReadings []string `json:"kun_readings,omitempty"`
	Pinyin      *string  `json:"pinyin,omitempty"`
	JLPTLevel   *int     `json:"jlpt_level,omitempty"`
	FalseFriend bool     `json:"false_friend,omitempty"`
	Strokes     *int     `json:"strokes,omitempty"`
}

// ParseCharacterList decodes a character list from JSON. Accepts an object
// wrapper {"characters": [...]} or a bare array.
func ParseCharacterList(data []byte) ([]*Character, error) {
	var wrapper struct {
		Characters []CharacterRecord `json:"characters"`
	}
	var records []CharacterRecord
	// Try the object wrapper first, then fall back to a bare array.
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Characters) > 0 {
		records = wrapper.Characters
	} else {
		var bare []CharacterRecord
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, errors.NewDecodeFailed("character list", err)
		}
		records = bare
	}

	out := make([]*Character, 0, len(records))
	for i, rec := range records {
		if rec.Literal == "" {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("characters[%d]: literal is required", i))
		}
		id := rec.ID
		if id == "" {
			id = CharacterID(rec.Literal)
		}
		out = append(out, &Character{
			ID:          id,
			Literal:     rec.Literal,
			Meanings:    rec.Meanings,
			OnReadings:  rec.OnReadings,
			KunReadings: rec.KunReadings,
			Pinyin:      rec.Pinyin,
			JLPTLevel:   rec.JLPTLevel,
			FalseFriend: rec.FalseFriend,
			Strokes:     rec.Strokes,
		})
	}
	return out, nil
}

// LoadCharacterFile reads and parses a character list file.
func LoadCharacterFile(path string) ([]*Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character file: %w", err)
	}
	return ParseCharacterList(data)
}

// EnsureSeeded loads the embedded starter dictionary when the characters
// table is empty. Returns the number of characters inserted, zero when the
// dictionary was already populated.
func EnsureSeeded(db *sql.DB) (int, error) {
	count, err := Count(db)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	chars, err := ParseCharacterList(seedData)
	if err != nil {
		return 0, fmt.Errorf("embedded seed is invalid: %w", err)
	}
	for _, c := range chars {
		if err := Upsert(db, c); err != nil {
			return 0, fmt.Errorf("seeding %s: %w", c.Literal, err)
		}
	}
	return len(chars), nil
}
