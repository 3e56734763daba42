package ops

import (
	"testing"

	"github.com/chopain/yomikae-sub001/internal/character"
	"github.com/chopain/yomikae-sub001/internal/errors"
)

func TestRemove_ByLiteral(t *testing.T) {
	store := newTestStore(t)
	store.Add(character.Ref{ID: "u6c34", Literal: "水"})
	store.Add(character.Ref{ID: "u706b", Literal: "火"})

	output, err := Remove(store, RemoveInput{Literal: "水"})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if output.ID != "u6c34" {
		t.Errorf("ID = %q, want u6c34", output.ID)
	}
	if !output.Removed {
		t.Error("Removed = false, want true")
	}
	if store.Contains("u6c34") {
		t.Error("removed character still in history")
	}
	if store.Len() != 1 {
		t.Errorf("history length = %d, want 1", store.Len())
	}
}

func TestRemove_ByID(t *testing.T) {
	store := newTestStore(t)
	store.Add(character.Ref{ID: "u6e6f", Literal: "湯"})

	output, err := Remove(store, RemoveInput{ID: "u6e6f"})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if !output.Removed {
		t.Error("Removed = false, want true")
	}
	if store.Len() != 0 {
		t.Errorf("history length = %d, want 0", store.Len())
	}
}

func TestRemove_Absent(t *testing.T) {
	store := newTestStore(t)
	store.Add(character.Ref{ID: "u6c34", Literal: "水"})

	// Removing something never added succeeds; Removed reports the no-op.
	output, err := Remove(store, RemoveInput{Literal: "湯"})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if output.Removed {
		t.Error("Removed = true, want false for absent entry")
	}
	if store.Len() != 1 {
		t.Errorf("history length = %d, want 1", store.Len())
	}
}

func TestRemove_AddressingErrors(t *testing.T) {
	store := newTestStore(t)

	_, err := Remove(store, RemoveInput{ID: "u6c34", Literal: "水"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Remove with both should return ErrInvalidRequest, got: %v", err)
	}

	_, err = Remove(store, RemoveInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Remove with neither should return ErrInvalidRequest, got: %v", err)
	}
}
