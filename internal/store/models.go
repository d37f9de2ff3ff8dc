package store

import "time"

type User struct {
	ID          string `json:"id"` // same as Email
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email"`
}

// FavoriteItem is a saved redesign. RedesignedImageData is a base64 data URL.
type FavoriteItem struct {
	ID                  string    `json:"id"`
	RedesignedImageData string    `json:"redesignedImageData"`
	Title               string    `json:"title"`
	Style               string    `json:"style"`
	CreatedAt           time.Time `json:"createdAt"`
	Likes               int       `json:"likes"`
	Comments            int       `json:"comments"`
	UserHasLiked        bool      `json:"userHasLiked"`
}
