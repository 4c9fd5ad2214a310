package middleware

import (
	"errors"
	"strings"

	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthUser is the resolved request identity. Role and SchoolID come from the
// token claims, not the stored record: the token is a capability snapshot and
// stays authoritative for its lifetime even if the user row changes underneath.
type AuthUser struct {
	User     *model.User
	Role     string
	SchoolID *uuid.UUID
}

func (a *AuthUser) ID() uuid.UUID {
	return a.User.ID
}

// UserLoader fetches a user by id with the assignment set populated.
type UserLoader interface {
	FindByID(id uuid.UUID) (*model.User, error)
}

const authUserKey = "authUser"

// Protect resolves the bearer token and stores the AuthUser in request locals.
// Each failure mode gets its own message so clients can tell a stale session
// from a malformed one.
func Protect(users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := strings.TrimSpace(c.Get("Authorization"))
		if bearer == "" || !strings.HasPrefix(bearer, "Bearer") {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Not authorized, no token",
			})
		}

		parts := strings.SplitN(bearer, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Not authorized, no token",
			})
		}

		claims, err := util.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			message := "Not authorized, token failed"
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				message = "Token expired. Please login again."
			case errors.Is(err, jwt.ErrTokenMalformed),
				errors.Is(err, jwt.ErrSignatureInvalid),
				errors.Is(err, jwt.ErrTokenSignatureInvalid):
				message = "Invalid token. Please login again."
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: message,
			}, err)
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil || user == nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Not authorized, token failed",
			}, err)
		}

		c.Locals(authUserKey, &AuthUser{
			User:     user,
			Role:     claims.Role,
			SchoolID: claims.SchoolID,
		})
		return c.Next()
	}
}

// CurrentUser returns the AuthUser resolved by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *AuthUser {
	if u, ok := c.Locals(authUserKey).(*AuthUser); ok {
		return u
	}
	return nil
}

func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u != nil && u.Role == model.RoleAdmin {
			return c.Next()
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: "Not authorized as an admin",
		})
	}
}

func EvaluatorOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u != nil && u.Role == model.RoleEvaluator {
			return c.Next()
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "Access denied. Evaluator role required.",
		})
	}
}

func AdminOrEvaluator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u != nil && (u.Role == model.RoleAdmin || u.Role == model.RoleEvaluator) {
			return c.Next()
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "Access denied.",
		})
	}
}
