package request

type MoodSearchRequest struct {
	Mood string `json:"mood" validate:"required,min=3,max=200"`
}
