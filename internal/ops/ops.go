// Package ops implements the operations behind the CLI and MCP surfaces:
// dictionary lookup and search, text scanning, and the lookup history
// commands. Each operation validates its input, drives the dictionary and
// history collaborators, and returns a typed output.
package ops

import (
	"strings"

	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/kanjidb"
)

// Operation limits
const (
	DefaultRecentLimit = 10

	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
	MaxQueryChars      = 200

	// MaxScanChars caps the text Scan will analyze in one call
	MaxScanChars = 100_000

	// MaxImportBytes caps history snapshot files read by Import
	MaxImportBytes = 1 << 20
)

// ResolveCharacterID turns an addressing input into a character ID.
// Rules:
// - Must specify exactly one of id or literal
// - Literals resolve through the same codepoint derivation the dictionary
//   uses, so history entries can be addressed without a database roundtrip
func ResolveCharacterID(id, literal string) (string, error) {
	id = strings.TrimSpace(id)
	literal = strings.TrimSpace(literal)

	if id != "" && literal != "" {
		return "", errors.NewInvalidRequest("specify either id or literal, not both")
	}
	if id == "" && literal == "" {
		return "", errors.NewInvalidRequest("must specify either id or literal")
	}

	if id != "" {
		return id, nil
	}
	return kanjidb.CharacterID(literal), nil
}
