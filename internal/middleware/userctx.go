package middleware

import "context"

type userKey struct{}

type UserCtx struct {
	UserID string
	Role   string
}

func WithUser(ctx context.Context, u UserCtx) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func FromCtx(ctx context.Context) UserCtx {
	if v := ctx.Value(userKey{}); v != nil {
		if u, ok := v.(UserCtx); ok {
			return u
		}
	}
	return UserCtx{}
}

// ActorID returns the authenticated user's id as an audit actor reference,
// or nil for unauthenticated/system requests.
func ActorID(ctx context.Context) *string {
	u := FromCtx(ctx)
	if u.UserID == "" {
		return nil
	}
	return &u.UserID
}
