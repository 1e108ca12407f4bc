package models

type TeamMemberItem struct {
	UserID          int64  `json:"userId"`
	UserName        string `json:"userName"`
	Avatar          string `json:"avatar,omitempty"`
	ReputationLevel *int   `json:"reputationLevel,omitempty"`
	Role            string `json:"role"`
	State           string `json:"state"`
}

// TeamDetail is a companion team formed around a post.
type TeamDetail struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Status        string           `json:"status"`
	PostID        *int64           `json:"postId"`
	Destination   *string          `json:"destination"`
	StartDate     *string          `json:"startDate"`
	EndDate       *string          `json:"endDate"`
	RelatedPlanID *int64           `json:"relatedPlanId"`
	MaxPeople     *int             `json:"maxPeople,omitempty"`
	BudgetMin     *float64         `json:"budgetMin,omitempty"`
	BudgetMax     *float64         `json:"budgetMax,omitempty"`
	Members       []TeamMemberItem `json:"members"`
}
