package ops

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/kanjidb"
)

// MaxDictBytes caps dictionary files read by ImportDict.
const MaxDictBytes = 32 << 20

// ImportDictInput contains parameters for the ImportDict operation.
type ImportDictInput struct {
	Path string // required
}

// ImportDictOutput contains the result of the ImportDict operation.
type ImportDictOutput struct {
	Path     string `json:"path"`
	Imported int    `json:"imported"`
}

// ImportDict loads a character list file into the dictionary. Existing
// characters are refreshed in place by literal, so reimporting an updated
// file is safe. Unlike history snapshots, dictionary files may live anywhere
// on disk.
func ImportDict(database *sql.DB, input ImportDictInput) (*ImportDictOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	info, err := os.Stat(input.Path)
	if os.IsNotExist(err) {
		return nil, errors.NewFileNotFound(input.Path)
	}
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to stat dictionary file: %w", err))
	}
	if info.Size() > MaxDictBytes {
		return nil, errors.NewFileTooLarge(MaxDictBytes, info.Size())
	}

	chars, err := kanjidb.LoadCharacterFile(input.Path)
	if err != nil {
		return nil, err
	}

	imported := 0
	for _, c := range chars {
		if err := kanjidb.Upsert(database, c); err != nil {
			return nil, err
		}
		imported++
	}

	return &ImportDictOutput{
		Path:     input.Path,
		Imported: imported,
	}, nil
}
