package models

// Page describes one page of a paginated listing.
type Page struct {
	Page        int   `json:"page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPage computes pagination metadata for a 1-based page.
func NewPage(page, perPage int, total int64) Page {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	return Page{
		Page:        page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// Offset returns the row offset of the page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PostPage is a page of posts.
type PostPage struct {
	Posts      []*Post `json:"posts"`
	Pagination Page    `json:"pagination"`
}

// AuthorStats aggregates what an author has written and received.
type AuthorStats struct {
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	DraftPosts     int64 `json:"draft_posts"`
	TotalViews     int64 `json:"total_views"`
	TotalLikes     int64 `json:"total_likes"`
	TotalComments  int64 `json:"total_comments"`
}

// Dashboard is the owner's overview of their own posts.
type Dashboard struct {
	AuthorStats
	RecentPosts  []*Post `json:"recent_posts"`
	PopularPosts []*Post `json:"popular_posts"`
}

// ProfileView is a user's profile with their public summary.
type ProfileView struct {
	User          *User    `json:"user"`
	Profile       *Profile `json:"profile"`
	TotalPosts    int64    `json:"total_posts"`
	TotalLikes    int64    `json:"total_likes"`
	TotalComments int64    `json:"total_comments"`
}
