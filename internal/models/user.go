package models

import "github.com/golang-jwt/jwt/v4"

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type RegisterRequest struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,e164"`
	Password string `json:"password" validate:"required,min=6"`
}

// MeDetail is the signed-in user's own profile.
type MeDetail struct {
	ID              int64  `json:"id"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Nickname        string `json:"nickname,omitempty"`
	Avatar          string `json:"avatar,omitempty"`
	City            string `json:"city,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Age             *int   `json:"age,omitempty"`
	Intro           string `json:"intro,omitempty"`
	Slogan          string `json:"slogan,omitempty"`
	ReputationScore *int   `json:"reputationScore,omitempty"`
	ReputationLevel *int   `json:"reputationLevel,omitempty"`
}

type UserPreferences struct {
	TravelStyles         []string `json:"travelStyles,omitempty"`
	Interests            []string `json:"interests,omitempty"`
	BudgetRange          string   `json:"budgetRange,omitempty"`
	TransportPreferences []string `json:"transportPreferences,omitempty"`
}

type UserStats struct {
	CompletedRoutes       int `json:"completedRoutes"`
	NotesCount            int `json:"notesCount"`
	CompanionSuccessCount int `json:"companionSuccessCount"`
	LikedCount            int `json:"likedCount"`
	FavoritedCount        int `json:"favoritedCount"`
}

// UserPublicProfile is what other users see on a homepage.
type UserPublicProfile struct {
	ID              int64            `json:"id"`
	Nickname        string           `json:"nickname"`
	Avatar          string           `json:"avatar,omitempty"`
	City            string           `json:"city,omitempty"`
	Gender          string           `json:"gender,omitempty"`
	Age             *int             `json:"age,omitempty"`
	Intro           string           `json:"intro,omitempty"`
	Slogan          string           `json:"slogan,omitempty"`
	CoverImage      string           `json:"coverImage,omitempty"`
	ReputationScore *int             `json:"reputationScore,omitempty"`
	ReputationLevel *int             `json:"reputationLevel,omitempty"`
	FollowersCount  *int             `json:"followersCount,omitempty"`
	FollowingCount  *int             `json:"followingCount,omitempty"`
	IsFollowed      bool             `json:"isFollowed,omitempty"`
	Preferences     *UserPreferences `json:"preferences,omitempty"`
	Stats           *UserStats       `json:"stats,omitempty"`
}

// FavoriteItem is an entry of the profile favourites tab. Type matches the
// upstream targetType: note, route, companion, feed or spot.
type FavoriteItem struct {
	Type        string `json:"type"`
	ID          int64  `json:"id"`
	Title       string `json:"title,omitempty"`
	Destination string `json:"destination,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
	AuthorName  string `json:"authorName,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
}

// TokenClaims are the claims the gateway reads out of upstream tokens. Only
// expiry matters; the signature is the upstream's business.
type TokenClaims struct {
	UserID int64 `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// FavoriteTarget is one row of GET interactions/favorites.
type FavoriteTarget struct {
	TargetType string `json:"targetType"`
	TargetID   int64  `json:"targetId"`
}
