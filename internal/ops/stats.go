package ops

import "github.com/chopain/yomikae-sub001/internal/history"

// StatsOutput contains the result of the Stats operation.
type StatsOutput struct {
	history.Stats
}

// Stats summarizes the current history. Figures are computed fresh on every
// call from the live entries.
func Stats(store *history.Store) (*StatsOutput, error) {
	return &StatsOutput{Stats: store.Statistics()}, nil
}
