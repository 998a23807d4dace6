package response

import (
	"time"
)

type ReviewResponse struct {
	ID              string    `json:"id"`
	MovieID         string    `json:"movie_id"`
	Username        string    `json:"username"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	Rating          int       `json:"rating"`
	Comment         string    `json:"comment"`
	IsSpoiler       bool      `json:"is_spoiler"`
	SpoilerHidden   bool      `json:"spoiler_hidden"`
	VerifiedWatcher bool      `json:"verified_watcher"`
	CreatedAt       time.Time `json:"created_at"`
}

// ReviewListResponse also tells the requester whether they are a verified
// watcher, which drives spoiler visibility client-side.
type ReviewListResponse struct {
	Reviews         []ReviewResponse `json:"reviews"`
	VerifiedWatcher bool             `json:"verified_watcher"`
	Pagination      PaginationMeta   `json:"pagination"`
}
