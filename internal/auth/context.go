package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// SystemUser is recorded as the actor for changes made by hooks and sweeps.
const SystemUser = "System"

type userKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// GetUserID returns the acting user from the context, then from the
// x-user-id metadata, falling back to SystemUser.
func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(userKey{}).(string); ok && val != "" {
		return val
	}

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if val := md.Get("x-user-id"); len(val) > 0 && val[0] != "" {
			return val[0]
		}
	}
	return SystemUser
}
