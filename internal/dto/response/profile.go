package response

import (
	"time"

	"movietix/internal/data/entity"
)

type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ProfileToResponse(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID.String(),
		Username:  profile.Username,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
		Role:      profile.Role,
		CreatedAt: profile.CreatedAt,
	}
}
