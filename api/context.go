package api

import (
	"context"

	"github.com/google/uuid"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the acting user's ID to the context
func ctxWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the acting user's ID from the context. The second
// return reports whether a requester identity is present at all, which is
// what the public listing uses as its authenticated/unauthenticated switch.
func ctxGetUserID(ctx context.Context) (uuid.UUID, bool) {
	ctxValue := ctx.Value(userIDKey)
	if ctxValue == nil {
		return uuid.Nil, false
	}
	userID, ok := ctxValue.(uuid.UUID)
	return userID, ok
}
