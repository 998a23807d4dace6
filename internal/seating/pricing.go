package seating

// Monetary amounts are integer minor units (paise). Integer math keeps
// repeated summation exact.

// premium seats cost 1.5x the show base price
const (
	premiumNumerator   = 3
	premiumDenominator = 2
)

// SeatPrice returns the price of one seat given the show base price and the
// seat tier. Deterministic and side-effect free.
func SeatPrice(basePrice int64, tier Tier) int64 {
	if tier == TierPremium {
		return basePrice * premiumNumerator / premiumDenominator
	}
	return basePrice
}

// TotalPrice sums SeatPrice over a validated selection.
func TotalPrice(sm *SeatMap, basePrice int64, seats []Seat) int64 {
	var total int64
	for _, seat := range seats {
		total += SeatPrice(basePrice, sm.TierOf(seat.Row))
	}
	return total
}
