package request

type UpdateProfileRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=30"`
	FullName  string `json:"full_name" validate:"max=100"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}
