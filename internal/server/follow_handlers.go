package server

import (
	"snsapp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowMember handles POST /api/users/:id/follows
func (s *Server) FollowMember(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.requireUserID(c)
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(ctx, userID, targetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnfollowMember handles DELETE /api/users/:id/follows
func (s *Server) UnfollowMember(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.requireUserID(c)
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(ctx, userID, targetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	memberID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	limit, cursor, err := s.parsePageQuery(c)
	if err != nil {
		return nil
	}

	page, err := s.followService.Followers(ctx, memberID, limit, cursor, viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(page)
}

// GetFollowings handles GET /api/users/:id/followings
func (s *Server) GetFollowings(c *fiber.Ctx) error {
	ctx := c.UserContext()
	memberID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	limit, cursor, err := s.parsePageQuery(c)
	if err != nil {
		return nil
	}

	page, err := s.followService.Followings(ctx, memberID, limit, cursor, viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(page)
}
