package seating

import (
	"errors"
	"testing"
)

func TestParseSeat_Valid(t *testing.T) {
	sm := DefaultSeatMap()

	tests := []struct {
		label  string
		row    string
		number int
	}{
		{"A1", "A", 1},
		{"a1", "A", 1},
		{"J15", "J", 15},
		{" B7 ", "B", 7},
		{"I10", "I", 10},
	}

	for _, tt := range tests {
		seat, err := sm.ParseSeat(tt.label)
		if err != nil {
			t.Errorf("ParseSeat(%q) returned error: %v", tt.label, err)
			continue
		}
		if seat.Row != tt.row || seat.Number != tt.number {
			t.Errorf("ParseSeat(%q) = %+v, want row %s number %d", tt.label, seat, tt.row, tt.number)
		}
	}
}

func TestParseSeat_Invalid(t *testing.T) {
	sm := DefaultSeatMap()

	invalid := []string{"", "A", "12", "A0", "A16", "K5", "ZZ3", "A-1", "1A"}

	for _, label := range invalid {
		if _, err := sm.ParseSeat(label); !errors.Is(err, ErrInvalidSeat) {
			t.Errorf("ParseSeat(%q): expected ErrInvalidSeat, got %v", label, err)
		}
	}
}

func TestTierOf_Deterministic(t *testing.T) {
	sm := DefaultSeatMap()

	for _, row := range sm.Rows() {
		first := sm.TierOf(row)
		for i := 0; i < 100; i++ {
			if tier := sm.TierOf(row); tier != first {
				t.Fatalf("TierOf(%s) changed between calls: %s then %s", row, first, tier)
			}
		}
	}

	if sm.TierOf("A") != TierStandard {
		t.Error("row A should be standard")
	}
	if sm.TierOf("I") != TierPremium || sm.TierOf("J") != TierPremium {
		t.Error("rows I and J should be premium")
	}
}

func TestValidateSelection_RejectsDuplicates(t *testing.T) {
	sm := DefaultSeatMap()

	if _, err := sm.ValidateSelection([]string{"A1", "A2", "a1"}); !errors.Is(err, ErrInvalidSeat) {
		t.Errorf("expected ErrInvalidSeat for duplicate selection, got %v", err)
	}
}

func TestValidateSelection_PreservesOrder(t *testing.T) {
	sm := DefaultSeatMap()

	seats, err := sm.ValidateSelection([]string{"J3", "A1", "B12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"J3", "A1", "B12"}
	for i, seat := range seats {
		if seat.Label() != want[i] {
			t.Errorf("seat %d = %s, want %s", i, seat.Label(), want[i])
		}
	}
}

func TestCapacity(t *testing.T) {
	sm := DefaultSeatMap()
	if sm.Capacity() != 150 {
		t.Errorf("Capacity() = %d, want 150", sm.Capacity())
	}
}
