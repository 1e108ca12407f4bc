package models

import "time"

// SpotFavoriteDisplay remembers how a favourited spot looked when it was saved
// so later shares show the same name and cover (MongoDB).
type SpotFavoriteDisplay struct {
	SpotID    int64     `json:"spotId" bson:"_id"`
	Name      string    `json:"name" bson:"name" validate:"required,max=128"`
	Location  string    `json:"location" bson:"location" validate:"max=256"`
	ImageURL  string    `json:"imageUrl,omitempty" bson:"image_url,omitempty" validate:"omitempty,url"`
	Lng       *float64  `json:"lng,omitempty" bson:"lng,omitempty" validate:"omitempty,longitude"`
	Lat       *float64  `json:"lat,omitempty" bson:"lat,omitempty" validate:"omitempty,latitude"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// ChatSpotPayload is the card shared in a chat (spotJson).
type ChatSpotPayload struct {
	RouteID       int64    `json:"routeId"`
	DayIndex      int      `json:"dayIndex"`
	ActivityIndex int      `json:"activityIndex"`
	Name          string   `json:"name"`
	Location      string   `json:"location,omitempty"`
	SpotID        *int64   `json:"spotId,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
}

type ChatRoutePayload struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Days        int    `json:"days"`
	Destination string `json:"destination"`
}

type ChatCompanionPayload struct {
	ID          int64  `json:"id"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}
