package server

import (
	"snsapp/internal/models"
	"snsapp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.requireUserID(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewInvalidArgumentError("Invalid request body"))
	}

	detail, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		MemberID: userID,
		PostID:   postID,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	limit, cursor, err := s.parsePageQuery(c)
	if err != nil {
		return nil
	}

	page, err := s.commentService.ListByPost(ctx, postID, limit, cursor, viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(page)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.requireUserID(c)
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(ctx, commentID, userID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateRecomment handles POST /api/comments/:id/recomments
func (s *Server) CreateRecomment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.requireUserID(c)
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewInvalidArgumentError("Invalid request body"))
	}

	detail, err := s.recommentService.CreateRecomment(ctx, service.CreateRecommentInput{
		MemberID:  userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

// GetRecomments handles GET /api/comments/:id/recomments
func (s *Server) GetRecomments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	limit, cursor, err := s.parsePageQuery(c)
	if err != nil {
		return nil
	}

	page, err := s.recommentService.ListByComment(ctx, commentID, limit, cursor, viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(page)
}

// DeleteRecomment handles DELETE /api/recomments/:id
func (s *Server) DeleteRecomment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.requireUserID(c)
	if err != nil {
		return nil
	}
	recommentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recommentService.DeleteRecomment(ctx, recommentID, userID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
