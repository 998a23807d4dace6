package response

import (
	"movietix/internal/data/entity"
)

type TheaterResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	City     string `json:"city"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type ScreenResponse struct {
	ID           string `json:"id"`
	ScreenNumber int    `json:"screen_number"`
	ScreenType   string `json:"screen_type"`
	Capacity     int    `json:"capacity"`
}

// TheaterDetailResponse is the theater page payload: the theater plus its
// screens.
type TheaterDetailResponse struct {
	TheaterResponse
	Screens []ScreenResponse `json:"screens"`
}

func ScreenToResponse(screen *entity.Screen) ScreenResponse {
	return ScreenResponse{
		ID:           screen.ID.String(),
		ScreenNumber: screen.ScreenNumber,
		ScreenType:   screen.ScreenType,
		Capacity:     screen.Capacity(),
	}
}

func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:       theater.ID.String(),
		Name:     theater.Name,
		Location: theater.Location,
		City:     theater.City,
		Address:  theater.Address,
		Phone:    theater.Phone,
		ImageURL: theater.ImageURL,
	}
}
