package seating

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSeat reports a seat label outside the screen layout
var ErrInvalidSeat = errors.New("invalid seat identifier")

// Tier classifies a seat row for pricing
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Seat is a parsed seat label, e.g. B12 -> {Row: "B", Number: 12}
type Seat struct {
	Row    string
	Number int
}

func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}

// SeatMap is the static geometry of one screen: ordered row labels, seats
// per row, and which rows are premium. Pure and immutable after construction.
type SeatMap struct {
	rows        []string
	seatsPerRow int
	premium     map[string]struct{}
	rowIndex    map[string]int
}

func NewSeatMap(rowLabels []string, seatsPerRow int, premiumRows []string) *SeatMap {
	sm := &SeatMap{
		rows:        rowLabels,
		seatsPerRow: seatsPerRow,
		premium:     make(map[string]struct{}, len(premiumRows)),
		rowIndex:    make(map[string]int, len(rowLabels)),
	}

	for i, row := range rowLabels {
		sm.rowIndex[row] = i
	}
	for _, row := range premiumRows {
		sm.premium[row] = struct{}{}
	}

	return sm
}

// DefaultSeatMap mirrors the standard 10x15 auditorium layout with the last
// two rows premium.
func DefaultSeatMap() *SeatMap {
	return NewSeatMap(
		[]string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
		15,
		[]string{"I", "J"},
	)
}

func (sm *SeatMap) Rows() []string {
	return sm.rows
}

func (sm *SeatMap) SeatsPerRow() int {
	return sm.seatsPerRow
}

func (sm *SeatMap) Capacity() int {
	return len(sm.rows) * sm.seatsPerRow
}

// ParseSeat validates a seat label against the layout and returns its parts.
// Labels are a row label followed by a 1-based seat number, e.g. "A1", "J15".
func (sm *SeatMap) ParseSeat(label string) (Seat, error) {
	label = strings.ToUpper(strings.TrimSpace(label))

	split := -1
	for i, c := range label {
		if c >= '0' && c <= '9' {
			split = i
			break
		}
	}
	if split <= 0 {
		return Seat{}, fmt.Errorf("seat %q: %w", label, ErrInvalidSeat)
	}

	row := label[:split]
	number, err := strconv.Atoi(label[split:])
	if err != nil {
		return Seat{}, fmt.Errorf("seat %q: %w", label, ErrInvalidSeat)
	}

	if _, ok := sm.rowIndex[row]; !ok {
		return Seat{}, fmt.Errorf("seat %q: row %s not in layout: %w", label, row, ErrInvalidSeat)
	}
	if number < 1 || number > sm.seatsPerRow {
		return Seat{}, fmt.Errorf("seat %q: number %d out of range 1-%d: %w", label, number, sm.seatsPerRow, ErrInvalidSeat)
	}

	return Seat{Row: row, Number: number}, nil
}

// TierOf returns the tier for a row. Rows outside the layout classify as
// standard; callers validate membership through ParseSeat first.
func (sm *SeatMap) TierOf(row string) Tier {
	if _, ok := sm.premium[row]; ok {
		return TierPremium
	}
	return TierStandard
}

// ValidateSelection parses every label, rejects duplicates, and returns the
// normalized seats in input order.
func (sm *SeatMap) ValidateSelection(labels []string) ([]Seat, error) {
	seats := make([]Seat, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))

	for _, label := range labels {
		seat, err := sm.ParseSeat(label)
		if err != nil {
			return nil, err
		}

		normalized := seat.Label()
		if _, dup := seen[normalized]; dup {
			return nil, fmt.Errorf("seat %s selected twice: %w", normalized, ErrInvalidSeat)
		}
		seen[normalized] = struct{}{}
		seats = append(seats, seat)
	}

	return seats, nil
}
