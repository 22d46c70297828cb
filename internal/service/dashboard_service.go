package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// DashboardLimit is the length of the recent and popular lists.
const DashboardLimit = 5

type DashboardService struct {
	postRepo repository.PostRepository
}

func NewDashboardService(postRepo repository.PostRepository) *DashboardService {
	return &DashboardService{postRepo: postRepo}
}

// GetDashboard summarizes the user's own posts, drafts included.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uint) (*models.Dashboard, error) {
	stats, err := s.postRepo.AuthorStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.postRepo.ListByAuthor(ctx, userID, repository.OrderNewest, DashboardLimit)
	if err != nil {
		return nil, err
	}
	popular, err := s.postRepo.ListByAuthor(ctx, userID, repository.OrderMostViewed, DashboardLimit)
	if err != nil {
		return nil, err
	}
	return &models.Dashboard{
		AuthorStats:  *stats,
		RecentPosts:  recent,
		PopularPosts: popular,
	}, nil
}
