package models

// NoteSummary is a travel note as listed by GET notes.
type NoteSummary struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Destination  string `json:"destination,omitempty"`
	CoverImage   string `json:"coverImage,omitempty"`
	AuthorID     *int64 `json:"authorId,omitempty"`
	AuthorName   string `json:"authorName,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	LikeCount    *int   `json:"likeCount,omitempty"`
	CommentCount *int   `json:"commentCount,omitempty"`
}

// NoteDetail is the full body of a single note.
type NoteDetail struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	CoverImage    string `json:"coverImage,omitempty"`
	RelatedPlanID *int64 `json:"relatedPlanId,omitempty"`
	Destination   string `json:"destination,omitempty"`
	AuthorID      *int64 `json:"authorId,omitempty"`
	AuthorName    string `json:"authorName,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// FeedItem is a community check-in post.
type FeedItem struct {
	ID            int64   `json:"id"`
	Content       string  `json:"content"`
	ImageURLsJSON *string `json:"imageUrlsJson"`
	AuthorID      *int64  `json:"authorId,omitempty"`
	AuthorName    string  `json:"authorName"`
	CreatedAt     string  `json:"createdAt"`
}

// CreateFeedRequest is the body of POST feeds.
type CreateFeedRequest struct {
	Content       string `json:"content" validate:"required,min=1,max=2000"`
	ImageURLsJSON string `json:"imageUrlsJson,omitempty" validate:"omitempty,json"`
}

// CompanionPostSummary is a companion-wanted post.
type CompanionPostSummary struct {
	ID                     int64    `json:"id"`
	Destination            string   `json:"destination"`
	StartDate              string   `json:"startDate"`
	EndDate                string   `json:"endDate"`
	MinPeople              *int     `json:"minPeople,omitempty"`
	MaxPeople              *int     `json:"maxPeople,omitempty"`
	BudgetMin              *float64 `json:"budgetMin,omitempty"`
	BudgetMax              *float64 `json:"budgetMax,omitempty"`
	Status                 string   `json:"status,omitempty"`
	CreatorID              *int64   `json:"creatorId,omitempty"`
	CreatorNickname        string   `json:"creatorNickname,omitempty"`
	RelatedPlanID          *int64   `json:"relatedPlanId,omitempty"`
	ExpectedMateDesc       string   `json:"expectedMateDesc,omitempty"`
	CreatorAvatar          string   `json:"creatorAvatar,omitempty"`
	CreatorReputationLevel *int     `json:"creatorReputationLevel,omitempty"`
	CreatorTags            string   `json:"creatorTags,omitempty"`
}

// CompanionPostDetail adds the linked team to a post summary.
type CompanionPostDetail struct {
	CompanionPostSummary
	TeamID *int64 `json:"teamId,omitempty"`
}

// CompanionFilter narrows GET companion/posts.
type CompanionFilter struct {
	Destination string
	StartDate   string
	EndDate     string
}

// CommentItem is a comment or a user review.
type CommentItem struct {
	ID        int64    `json:"id"`
	UserID    *int64   `json:"userId,omitempty"`
	UserName  string   `json:"userName"`
	Content   string   `json:"content"`
	Score     *float64 `json:"score"`
	CreatedAt string   `json:"createdAt"`
	Tags      []string `json:"tags,omitempty"`
}

// InteractionSummary reports like and favourite counts of one target.
type InteractionSummary struct {
	LikeCount              int  `json:"likeCount"`
	FavoriteCount          int  `json:"favoriteCount"`
	LikedByCurrentUser     bool `json:"likedByCurrentUser"`
	FavoritedByCurrentUser bool `json:"favoritedByCurrentUser"`
}

// PageResult is the upstream pagination wrapper.
type PageResult[T any] struct {
	List     []T `json:"list"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
