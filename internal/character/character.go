// Package character defines the character reference exchanged between the
// dictionary database, the lookup history, and the tool surfaces.
package character

// JapaneseInfo holds the Japanese-language data for a character.
type JapaneseInfo struct {
	// OnReadings are the Sino-Japanese readings in katakana
	OnReadings []string `json:"on_readings,omitempty"`

	// KunReadings are the native Japanese readings in hiragana
	KunReadings []string `json:"kun_readings,omitempty"`

	// JLPTLevel is 1-5 (5 = easiest); nil when the character is not on any JLPT list
	JLPTLevel *int `json:"jlpt_level,omitempty"`
}

// ChineseInfo holds the Chinese-language data for a character.
type ChineseInfo struct {
	Pinyin string `json:"pinyin,omitempty"`
}

// Ref is a resolved character reference as handed out by the dictionary.
// ID is the stable identity used for deduplication and removal; every other
// field is display payload and never influences history membership.
type Ref struct {
	ID       string   `json:"id"`
	Literal  string   `json:"literal"`
	Meanings []string `json:"meanings,omitempty"`

	// IsFalseFriend marks characters whose meaning diverges between
	// Chinese and Japanese usage (e.g. 手紙: letter vs. toilet paper)
	IsFalseFriend bool `json:"is_false_friend"`

	// Japanese is nil for characters with no Japanese dictionary data
	Japanese *JapaneseInfo `json:"japanese,omitempty"`

	// Chinese is nil for characters with no Chinese dictionary data
	Chinese *ChineseInfo `json:"chinese,omitempty"`
}

// JLPT returns the character's JLPT level. ok is false when the character
// has no Japanese info or sits outside the JLPT lists; both optionality
// levels must be present for a match.
func (r Ref) JLPT() (level int, ok bool) {
	if r.Japanese == nil || r.Japanese.JLPTLevel == nil {
		return 0, false
	}
	return *r.Japanese.JLPTLevel, true
}
