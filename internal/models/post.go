package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether s is a known status.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

const wordsPerMinute = 200

type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	DatePosted  time.Time  `gorm:"autoCreateTime;not null;index" json:"date_posted"`
	DateUpdated time.Time  `gorm:"autoUpdateTime" json:"date_updated"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Image       string     `gorm:"size:255" json:"image,omitempty"`
	CategoryID  *uint      `gorm:"index" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	Status      PostStatus `gorm:"size:10;not null;default:published;index" json:"status"`
	Views       uint       `gorm:"not null;default:0" json:"views"`

	// TotalLikes is computed at query time
	TotalLikes int64 `gorm:"->;-:migration" json:"total_likes"`
	// TotalComments is computed at query time
	TotalComments int64 `gorm:"->;-:migration" json:"total_comments"`
	// Liked indicates whether the requesting user liked this post (computed)
	Liked       bool `gorm:"->;-:migration" json:"liked"`
	ReadingTime int  `gorm:"-" json:"reading_time"`
}

// AfterFind fills in derived fields.
func (p *Post) AfterFind(tx *gorm.DB) error {
	p.ReadingTime = EstimateReadingTime(p.Content)
	return nil
}

// IsPublished reports whether the post is visible in public listings.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// EstimateReadingTime returns whole minutes at 200 words per minute, never less than 1.
func EstimateReadingTime(content string) int {
	minutes := len(strings.Fields(content)) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
