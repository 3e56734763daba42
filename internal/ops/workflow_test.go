package ops

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chopain/yomikae-sub001/internal/config"
	"github.com/chopain/yomikae-sub001/internal/errors"
)

// TestFullWorkflow exercises the complete lookup lifecycle:
// lookup → recent → filter → stats → export → clear → import → remove
func TestFullWorkflow(t *testing.T) {
	database := newTestDB(t)
	store := newTestStore(t)
	ctx := context.Background()

	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{tmpDir}

	// 1. Look up three characters
	for _, q := range []string{"水", "手紙", "湯"} {
		out, err := Lookup(ctx, database, store, LookupInput{Query: q})
		require.NoError(t, err)
		require.Equal(t, q, out.Character.Literal)
		require.True(t, out.Remembered)
	}

	// 2. Recent - newest first
	recentOut, err := Recent(store, RecentInput{})
	require.NoError(t, err)
	require.Len(t, recentOut.Items, 3)
	require.Equal(t, "湯", recentOut.Items[0].Literal)

	// 3. Filter down to the false friends
	filterOut, err := Filter(store, FilterInput{FalseFriendsOnly: true})
	require.NoError(t, err)
	require.Len(t, filterOut.Items, 2)
	require.Equal(t, "湯", filterOut.Items[0].Literal)
	require.Equal(t, "手紙", filterOut.Items[1].Literal)

	// 4. Stats reflect the lookups
	statsOut, err := Stats(store)
	require.NoError(t, err)
	require.Equal(t, 3, statsOut.TotalLookups)
	require.Equal(t, 2, statsOut.FalseFriends)
	require.NotNil(t, statsOut.MostRecent)
	require.Equal(t, "湯", statsOut.MostRecent.Literal)
	require.Equal(t, map[int]int{3: 1, 4: 1, 5: 1}, statsOut.JLPTDistribution)

	// 5. Export a snapshot
	exportPath := filepath.Join(tmpDir, "history.json")
	exportOut, err := Export(store, cfg, ExportInput{Path: exportPath})
	require.NoError(t, err)
	require.Equal(t, 3, exportOut.Count)

	// 6. Clear the history
	clearOut, err := Clear(store)
	require.NoError(t, err)
	require.Equal(t, 3, clearOut.Cleared)

	listOut, err := List(store)
	require.NoError(t, err)
	require.Zero(t, listOut.Count)

	// 7. Import restores everything in order
	importOut, err := Import(store, cfg, ImportInput{Path: exportPath})
	require.NoError(t, err)
	require.Equal(t, 3, importOut.Entries)

	recentOut, err = Recent(store, RecentInput{})
	require.NoError(t, err)
	require.Equal(t, "湯", recentOut.Items[0].Literal)

	// 8. Remove one entry and verify it is gone
	removeOut, err := Remove(store, RemoveInput{Literal: "水"})
	require.NoError(t, err)
	require.True(t, removeOut.Removed)

	containsOut, err := Contains(store, ContainsInput{Literal: "水"})
	require.NoError(t, err)
	require.False(t, containsOut.Contained)

	// 9. Unknown queries surface a typed not-found error
	_, err = Lookup(ctx, database, store, LookupInput{Query: "存在しない言葉"})
	require.Error(t, err)
	var yErr *errors.YomikaeError
	require.ErrorAs(t, err, &yErr)
	require.Equal(t, errors.ErrNotFound, yErr.Code)
}
