package request

// CreateBookingRequest carries the client's seat selection. TotalPrice is the
// client-computed total in minor units; the server recomputes and rejects on
// mismatch. IdempotencyKey makes network-level retries safe.
type CreateBookingRequest struct {
	ShowID         string   `json:"show_id" validate:"required,uuid4"`
	Seats          []string `json:"seats" validate:"required,min=1,max=10,dive,min=2,max=4"`
	TotalPrice     int64    `json:"total_price" validate:"required,min=1"`
	IdempotencyKey *string  `json:"idempotency_key,omitempty" validate:"omitempty,min=8,max=64"`
}
