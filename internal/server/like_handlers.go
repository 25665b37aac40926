package server

import (
	"context"

	"snsapp/internal/feed"
	"snsapp/internal/models"
	"snsapp/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// likeAction runs an authenticated like or unlike against a parsed target id.
func (s *Server) likeAction(c *fiber.Ctx, fn func(ctx context.Context, memberID, targetID uint) error) error {
	ctx := c.UserContext()
	userID, err := s.requireUserID(c)
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := fn(ctx, userID, targetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// likerListing pages the members who liked a parsed target id.
func (s *Server) likerListing(c *fiber.Ctx, fn func(ctx context.Context, targetID uint, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.UserInfo], error)) error {
	ctx := c.UserContext()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	limit, cursor, err := s.parsePageQuery(c)
	if err != nil {
		return nil
	}

	page, err := fn(ctx, targetID, limit, cursor, viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(page)
}

// LikePost handles POST /api/posts/:id/likes
func (s *Server) LikePost(c *fiber.Ctx) error {
	return s.likeAction(c, s.likeService.LikePost)
}

// UnlikePost handles DELETE /api/posts/:id/likes
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	return s.likeAction(c, s.likeService.UnlikePost)
}

// LikeComment handles POST /api/comments/:id/likes
func (s *Server) LikeComment(c *fiber.Ctx) error {
	return s.likeAction(c, s.likeService.LikeComment)
}

// UnlikeComment handles DELETE /api/comments/:id/likes
func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	return s.likeAction(c, s.likeService.UnlikeComment)
}

// LikeRecomment handles POST /api/recomments/:id/likes
func (s *Server) LikeRecomment(c *fiber.Ctx) error {
	return s.likeAction(c, s.likeService.LikeRecomment)
}

// UnlikeRecomment handles DELETE /api/recomments/:id/likes
func (s *Server) UnlikeRecomment(c *fiber.Ctx) error {
	return s.likeAction(c, s.likeService.UnlikeRecomment)
}

// GetPostLikers handles GET /api/posts/:id/likes
func (s *Server) GetPostLikers(c *fiber.Ctx) error {
	return s.likerListing(c, s.likeService.PostLikers)
}

// GetCommentLikers handles GET /api/comments/:id/likes
func (s *Server) GetCommentLikers(c *fiber.Ctx) error {
	return s.likerListing(c, s.likeService.CommentLikers)
}

// GetRecommentLikers handles GET /api/recomments/:id/likes
func (s *Server) GetRecommentLikers(c *fiber.Ctx) error {
	return s.likerListing(c, s.likeService.RecommentLikers)
}
