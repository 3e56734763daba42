// Package analyze segments Japanese text with the kagome morphological
// analyzer and extracts the characters worth looking up in the dictionary.
package analyze

import (
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is a single analyzed unit of text.
type Token struct {
	// Surface is the text as it appears (e.g. 書い)
	Surface string `json:"surface"`

	// BaseForm is the dictionary form (e.g. 書く)
	BaseForm string `json:"base_form"`

	// Reading is the katakana pronunciation when the dictionary knows it
	Reading string `json:"reading,omitempty"`

	// POS is the primary part of speech label (e.g. 動詞)
	POS string `json:"pos,omitempty"`
}

// Analyzer wraps a kagome tokenizer loaded with the bundled IPA dictionary.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// New builds an analyzer. Loading the IPA dictionary is not free, so callers
// should build one analyzer and reuse it.
func New() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Tokenize breaks text into tokens with readings and base forms. Dummy and
// whitespace-only tokens are dropped.
func (a *Analyzer) Tokenize(text string) []Token {
	var out []Token
	for _, tok := range a.t.Tokenize(text) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}

		// IPA feature layout: 0 part of speech, 6 base form, 7 reading.
		features := tok.Features()

		base := tok.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}
		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}
		pos := ""
		if len(features) > 0 {
			pos = features[0]
		}

		out = append(out, Token{
			Surface:  tok.Surface,
			BaseForm: base,
			Reading:  reading,
			POS:      pos,
		})
	}
	return out
}

// LookupKeys returns the distinct dictionary lookup candidates for text in
// first-appearance order: kanji-bearing base forms first, so compounds like
// 手紙 stay whole, then the individual kanji. Callers probe the dictionary
// with each key and keep the hits.
func (a *Analyzer) LookupKeys(text string) []string {
	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for _, tok := range a.Tokenize(text) {
		if ContainsKanji(tok.BaseForm) {
			add(tok.BaseForm)
		}
	}
	for _, r := range text {
		if IsKanji(r) {
			add(string(r))
		}
	}
	return keys
}

// IsKanji reports whether r is a CJK ideograph.
func IsKanji(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// ContainsKanji reports whether s contains at least one CJK ideograph.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// Kanji returns the distinct ideographs in text in first-appearance order.
func Kanji(text string) []string {
	seen := make(map[rune]bool)
	var out []string
	for _, r := range text {
		if IsKanji(r) && !seen[r] {
			seen[r] = true
			out = append(out, string(r))
		}
	}
	return out
}
