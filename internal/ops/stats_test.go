package ops

import (
	"testing"

	"github.com/chopain/yomikae-sub001/internal/character"
)

func TestStats(t *testing.T) {
	store := seedFilterStore(t)

	output, err := Stats(store)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if output.TotalLookups != 4 {
		t.Errorf("TotalLookups = %d, want 4", output.TotalLookups)
	}
	if output.UniqueCharacters != 4 {
		t.Errorf("UniqueCharacters = %d, want 4", output.UniqueCharacters)
	}
	if output.FalseFriends != 2 {
		t.Errorf("FalseFriends = %d, want 2", output.FalseFriends)
	}
	if output.MostRecent == nil || output.MostRecent.Literal != "湯" {
		t.Errorf("MostRecent = %v, want 湯", output.MostRecent)
	}

	want := map[int]int{3: 1, 4: 1, 5: 1}
	if len(output.JLPTDistribution) != len(want) {
		t.Fatalf("JLPTDistribution = %v, want %v", output.JLPTDistribution, want)
	}
	for level, count := range want {
		if output.JLPTDistribution[level] != count {
			t.Errorf("JLPTDistribution[%d] = %d, want %d", level, output.JLPTDistribution[level], count)
		}
	}
}

func TestStats_Empty(t *testing.T) {
	store := newTestStore(t)

	output, err := Stats(store)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if output.TotalLookups != 0 {
		t.Errorf("TotalLookups = %d, want 0", output.TotalLookups)
	}
	if output.MostRecent != nil {
		t.Errorf("MostRecent = %v, want nil", output.MostRecent)
	}
	if len(output.JLPTDistribution) != 0 {
		t.Errorf("JLPTDistribution = %v, want empty", output.JLPTDistribution)
	}
}

func TestStats_RecomputedAfterChanges(t *testing.T) {
	store := newTestStore(t)
	store.Add(character.Ref{ID: "u6c34", Literal: "水"})

	output, err := Stats(store)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if output.TotalLookups != 1 {
		t.Fatalf("TotalLookups = %d, want 1", output.TotalLookups)
	}

	store.Remove("u6c34")

	output, err = Stats(store)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if output.TotalLookups != 0 {
		t.Errorf("TotalLookups after removal = %d, want 0", output.TotalLookups)
	}
}
