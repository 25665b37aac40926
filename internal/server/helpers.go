package server

import (
	"context"
	"errors"
	"strconv"

	"snsapp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil afterwards.
var errResponseWritten = errors.New("response already written")

const defaultPageLimit = 20

// parseID extracts a route parameter as a positive uint. On failure it
// writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewInvalidArgumentError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePageQuery extracts the limit and cursor query parameters. A missing
// cursor means the newest page. Malformed values are rejected rather than
// coerced: "?cursor=abc" must not silently serve the first page. On failure
// a 400 JSON response is written and errResponseWritten returned. A numeric
// but out-of-range limit still flows through to the services' validation.
func (s *Server) parsePageQuery(c *fiber.Ctx) (int, *uint, error) {
	limit := defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			_ = models.RespondWithError(c, models.NewInvalidArgumentError("Invalid limit"))
			return 0, nil, errResponseWritten
		}
		limit = v
	}

	var cursor *uint
	if raw := c.Query("cursor"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || v == 0 {
			_ = models.RespondWithError(c, models.NewInvalidArgumentError("Invalid cursor"))
			return 0, nil, errResponseWritten
		}
		u := uint(v)
		cursor = &u
	}
	return limit, cursor, nil
}

// viewerID returns the authenticated member id, or 0 for anonymous requests.
func viewerID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// requireUserID returns the authenticated member id. Routes behind
// AuthRequired always have one; a missing id is a wiring bug.
func (s *Server) requireUserID(c *fiber.Ctx) (uint, error) {
	uid, ok := c.Locals("userID").(uint)
	if !ok {
		_ = models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
		return 0, errResponseWritten
	}
	return uid, nil
}

func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).Select("role").First(&member, userID).Error; err != nil {
		return false, err
	}
	return member.Role == models.RoleAdmin, nil
}
