package serverutils

import (
	"errors"

	"knotpad-be/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// ParseUserToken verifies an HS256 token and returns its user_id claim.
func ParseUserToken(secret, tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidClaims
	}

	rawId, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(rawId)
	if err != nil || userId == uuid.Nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return userId, nil
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	return authHeader[7:]
}

// JwtMiddleware verifies an HS256 bearer token and stores its user_id claim
// in the request's user context.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := BearerToken(ctx)
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
		}

		userId, err := ParseUserToken(secret, tokenStr)
		switch {
		case errors.Is(err, ErrInvalidToken):
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		case err != nil:
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
		}

		ctx.Locals("user_id", userId.String())
		ctx.SetUserContext(session.WithUserID(ctx.UserContext(), userId))
		return ctx.Next()
	}
}
