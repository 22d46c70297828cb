package server

import (
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile
// @Summary Your profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProfileView
// @Router /profile [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	view, err := s.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// UpdateProfile handles PUT /api/profile
// @Summary Update your profile
// @Description Omitted fields are left unchanged; an empty avatar resets to the default
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{bio=string,avatar=string,website=string,location=string} true "Profile"
// @Success 200 {object} models.ProfileView
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [put]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Bio      *string `json:"bio"`
		Avatar   *string `json:"avatar"`
		Website  *string `json:"website"`
		Location *string `json:"location"`
	}
	if err := bindJSON(c, &req); err != nil {
		return nil
	}

	view, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   userID,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Website:  req.Website,
		Location: req.Location,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// ListProfilePosts handles GET /api/profile/posts
// @Summary Your posts
// @Description Every post you wrote, drafts included, newest first
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Success 200 {object} models.PostPage
// @Router /profile/posts [get]
func (s *Server) ListProfilePosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, err := s.postService.ListOwnPosts(c.UserContext(), userID, parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetDashboard handles GET /api/dashboard
// @Summary Author dashboard
// @Description Totals across your posts plus your recent and most viewed posts
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Dashboard
// @Router /dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	dashboard, err := s.dashService.GetDashboard(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dashboard)
}
