package models

import "time"

// Category groups posts under a named, slugged topic.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"size:300" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
