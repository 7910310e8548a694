package models

import (
	"time"
)

// User is the local profile for an identity issued by the external OAuth
// gateway. Authentication and session issuance live in the gateway; this
// table only carries what comment listings need (display name and avatar),
// synced by the gateway after login.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:191;not null" json:"name"`
	AvatarURL string    `gorm:"size:512" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
