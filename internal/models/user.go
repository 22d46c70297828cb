// Package models contains data structures for the blog's domain models.
package models

import (
	"time"
)

// DefaultAvatar is the avatar path every new profile starts with.
const DefaultAvatar = "avatars/default.png"

// User is an account. Every user owns exactly one Profile.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile,omitempty"`
}

// Profile extends a User with public-facing details.
type Profile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio      string `gorm:"size:500" json:"bio"`
	Avatar   string `gorm:"size:255;not null;default:avatars/default.png" json:"avatar"`
	Website  string `gorm:"size:200" json:"website"`
	Location string `gorm:"size:100" json:"location"`
}

// NewProfile returns the default profile for a freshly created user.
func NewProfile(userID uint) *Profile {
	return &Profile{UserID: userID, Avatar: DefaultAvatar}
}
