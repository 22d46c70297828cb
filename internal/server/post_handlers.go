package server

import (
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Image      string            `json:"image"`
	CategoryID *uint             `json:"category_id"`
	Status     models.PostStatus `json:"status"`
}

// ListPosts handles GET /api/posts?q=&category=&page=
// @Summary List published posts
// @Description One page of published posts, newest first, with categories and popular posts
// @Tags posts
// @Produce json
// @Param q query string false "Search title and content"
// @Param category query string false "Category slug"
// @Param page query int false "Page number"
// @Success 200 {object} service.PostListing
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	listing, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		Query:         c.Query("q"),
		CategorySlug:  c.Query("category"),
		Page:          parsePage(c),
		CurrentUserID: currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// PopularPosts handles GET /api/posts/popular
// @Summary Most viewed posts
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /posts/popular [get]
func (s *Server) PopularPosts(c *fiber.Ctx) error {
	posts, err := s.postService.PopularPosts(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Post detail
// @Description Returns the post with its comment thread and counts one view
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} service.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.postService.GetPost(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body postRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req postRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID:   userID,
		Title:      req.Title,
		Content:    req.Content,
		Image:      req.Image,
		CategoryID: req.CategoryID,
		Status:     req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}

	if post.IsPublished() {
		s.publishBroadcastEvent(c.UserContext(), notifications.EventPostPublished, fiber.Map{
			"post_id":   post.ID,
			"title":     post.Title,
			"author_id": post.AuthorID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update your own post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body postRequest true "Post"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:     userID,
		PostID:     postID,
		Title:      req.Title,
		Content:    req.Content,
		Image:      req.Image,
		CategoryID: req.CategoryID,
		Status:     req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}

	if post.IsPublished() {
		s.publishBroadcastEvent(c.UserContext(), notifications.EventPostUpdated, fiber.Map{
			"post_id": post.ID,
			"title":   post.Title,
		})
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete your own post
// @Description Removes the post with its comments and likes
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), userID, postID); err != nil {
		return respondError(c, err)
	}

	s.publishBroadcastEvent(c.UserContext(), notifications.EventPostDeleted, fiber.Map{
		"post_id": postID,
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like
// @Summary Like or unlike a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.LikeResult
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.postService.ToggleLike(c.UserContext(), userID, postID)
	if err != nil {
		return respondError(c, err)
	}

	s.publishBroadcastEvent(c.UserContext(), notifications.EventLikeToggled, fiber.Map{
		"post_id":     postID,
		"total_likes": result.TotalLikes,
	})
	if result.Liked && result.PostAuthorID != userID {
		s.publishUserEvent(c.UserContext(), result.PostAuthorID, notifications.EventPostLiked, fiber.Map{
			"post_id": postID,
			"user_id": userID,
		})
	}

	return c.JSON(result)
}

// ListCategoryPosts handles GET /api/categories/:slug/posts?page=
// @Summary Published posts in a category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query int false "Page number"
// @Success 200 {object} service.CategoryPosts
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{slug}/posts [get]
func (s *Server) ListCategoryPosts(c *fiber.Ctx) error {
	result, err := s.postService.ListByCategory(c.UserContext(), c.Params("slug"), parsePage(c), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListUserPosts handles GET /api/users/:username/posts?page=
// @Summary Published posts by an author
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number"
// @Success 200 {object} service.AuthorPosts
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username}/posts [get]
func (s *Server) ListUserPosts(c *fiber.Ctx) error {
	result, err := s.postService.ListByAuthor(c.UserContext(), c.Params("username"), parsePage(c), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
