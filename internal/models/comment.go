package models

import "time"

// Comment is a post comment. Replies point at their parent through ParentID.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	Post       *Post     `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	DatePosted time.Time `gorm:"autoCreateTime;not null;index" json:"date_posted"`
	ParentID   *uint     `gorm:"index" json:"parent_id"`

	Replies []*Comment `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"replies"`
}

// IsReply reports whether the comment answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// BuildThread arranges a flat list of one post's comments into a forest.
// Input order is preserved among siblings, so callers pass comments already
// sorted newest first. Comments whose parent is absent from the list are
// treated as top-level.
func BuildThread(comments []*Comment) []*Comment {
	byID := make(map[uint]*Comment, len(comments))
	for _, c := range comments {
		c.Replies = []*Comment{}
		byID[c.ID] = c
	}

	roots := make([]*Comment, 0, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok && parent != c {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}

// CountThread returns the number of comments in a forest.
func CountThread(roots []*Comment) int {
	n := 0
	for _, c := range roots {
		n += 1 + CountThread(c.Replies)
	}
	return n
}
