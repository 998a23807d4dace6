package request

type CreateReviewRequest struct {
	Rating    int    `json:"rating" validate:"required,min=1,max=10"`
	Comment   string `json:"comment" validate:"required,min=1,max=2000"`
	IsSpoiler bool   `json:"is_spoiler"`
}
