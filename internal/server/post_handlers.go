package server

import (
	"snsapp/internal/models"
	"snsapp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.requireUserID(c)
	if err != nil {
		return nil
	}

	var req struct {
		BoardType  string `json:"board_type"`
		Content    string `json:"content"`
		ImageURL   string `json:"image_url,omitempty"`
		YoutubeURL string `json:"youtube_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewInvalidArgumentError("Invalid request body"))
	}

	detail, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		MemberID:   userID,
		BoardType:  req.BoardType,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		YoutubeURL: req.YoutubeURL,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(detail)
}

// GetBoardPosts handles GET /api/posts?board_type=all&limit=20&cursor=123
func (s *Server) GetBoardPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	board := c.Query("board_type", string(models.BoardAll))
	limit, cursor, err := s.parsePageQuery(c)
	if err != nil {
		return nil
	}

	page, err := s.postService.ListBoard(ctx, board, limit, cursor, viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.postService.GetPost(ctx, id, viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(detail)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	memberID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	limit, cursor, err := s.parsePageQuery(c)
	if err != nil {
		return nil
	}

	page, err := s.postService.ListByMember(ctx, memberID, limit, cursor, viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(page)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.requireUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, id, userID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
