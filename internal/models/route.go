package models

// TripPlanActivity is one stop of a planned day.
type TripPlanActivity struct {
	Type          string   `json:"type,omitempty"`
	Name          string   `json:"name,omitempty"`
	Location      string   `json:"location,omitempty"`
	StartTime     string   `json:"startTime,omitempty"`
	EndTime       string   `json:"endTime,omitempty"`
	Transport     string   `json:"transport,omitempty"`
	EstimatedCost *float64 `json:"estimatedCost,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
}

type TripPlanDay struct {
	DayIndex   int                `json:"dayIndex"`
	Date       string             `json:"date"`
	Activities []TripPlanActivity `json:"activities"`
}

// PlanResponse is a saved route (trip plan).
type PlanResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Destination string        `json:"destination"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Budget      *float64      `json:"budget,omitempty"`
	PeopleCount *int          `json:"peopleCount,omitempty"`
	Pace        string        `json:"pace,omitempty"`
	Days        []TripPlanDay `json:"days,omitempty"`
	UsedCount   *int          `json:"usedCount,omitempty"`
}

// AiGenerateRouteRequest asks the upstream planner for route variants.
type AiGenerateRouteRequest struct {
	DepartureCity       string   `json:"departureCity,omitempty"`
	Destinations        []string `json:"destinations"`
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	TotalBudget         *float64 `json:"totalBudget,omitempty"`
	PeopleCount         int      `json:"peopleCount,omitempty"`
	Transport           string   `json:"transport,omitempty"`
	Intensity           string   `json:"intensity,omitempty"`
	InterestWeightsJSON string   `json:"interestWeightsJson,omitempty"`
}

type AiPoiItem struct {
	ID          string   `json:"id"`
	Image       string   `json:"image"`
	Name        string   `json:"name"`
	StayMinutes int      `json:"stayMinutes"`
	Tags        []string `json:"tags"`
	Lng         *float64 `json:"lng,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
}

type AiDayPlan struct {
	DayIndex        int         `json:"dayIndex"`
	Date            string      `json:"date"`
	DurationMinutes int         `json:"durationMinutes"`
	DistanceKm      float64     `json:"distanceKm"`
	CommuteMinutes  int         `json:"commuteMinutes"`
	Items           []AiPoiItem `json:"items"`
}

type AiPlanVariant struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Days []AiDayPlan `json:"days"`
}

type AiGenerateRouteResponse struct {
	Variants []AiPlanVariant `json:"variants"`
}
