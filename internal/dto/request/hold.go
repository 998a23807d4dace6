package request

type HoldSeatsRequest struct {
	Seats []string `json:"seats" validate:"required,min=1,max=10,dive,min=2,max=4"`
}
