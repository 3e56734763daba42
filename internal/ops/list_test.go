package ops

import (
	"testing"

	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/history"
)

func TestList(t *testing.T) {
	store := newTestStore(t)
	store.Add(character.Ref{ID: "u6c34", Literal: "水"})
	store.Add(character.Ref{ID: "u706b", Literal: "火"})
	store.Add(character.Ref{ID: "u6e6f", Literal: "湯"})

	output, err := List(store)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if output.Count != 3 {
		t.Fatalf("Count = %d, want 3", output.Count)
	}
	if output.Items[0].Literal != "湯" {
		t.Errorf("Items[0] = %q, want 湯 (newest first)", output.Items[0].Literal)
	}
	if output.Capacity != history.MaxEntries {
		t.Errorf("Capacity = %d, want %d", output.Capacity, history.MaxEntries)
	}
}

func TestList_Empty(t *testing.T) {
	store := newTestStore(t)

	output, err := List(store)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if output.Count != 0 {
		t.Errorf("Count = %d, want 0", output.Count)
	}
	if output.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
	if output.Capacity != history.MaxEntries {
		t.Errorf("Capacity = %d, want %d", output.Capacity, history.MaxEntries)
	}
}
