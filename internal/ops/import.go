package ops

import (
	"fmt"
	"io"

	"github.com/chopain/yomikae-sub001/internal/config"
	"github.com/chopain/yomikae-sub001/internal/errors"
	"github.com/chopain/yomikae-sub001/internal/history"
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string // required
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Path string `json:"path"`

	// Entries is the history length after the merge
	Entries int `json:"entries"`
}

// Import merges a previously exported snapshot file into the lookup history.
// Imported entries win the front of the merged list; existing entries keep
// their relative order behind them, deduplicated by ID and truncated to
// capacity. An undecodable file leaves the history untouched.
func Import(store *history.Store, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	if err := ValidatePath(input.Path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to stat import file: %w", err))
	}
	if info.Size() > MaxImportBytes {
		return nil, errors.NewFileTooLarge(MaxImportBytes, info.Size())
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}

	if err := store.ImportSnapshot(data); err != nil {
		return nil, err
	}

	return &ImportOutput{
		Path:    input.Path,
		Entries: store.Len(),
	}, nil
}
