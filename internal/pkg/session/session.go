package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no authenticated user in context")

type userIDKey struct{}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// Resolver answers "who is the current user" for a request context.
type Resolver interface {
	CurrentUserID(ctx context.Context) (uuid.UUID, error)
}

type ContextResolver struct{}

func NewContextResolver() *ContextResolver {
	return &ContextResolver{}
}

func (ContextResolver) CurrentUserID(ctx context.Context) (uuid.UUID, error) {
	id, ok := UserID(ctx)
	if !ok {
		return uuid.Nil, ErrNoSession
	}
	return id, nil
}
