package publishing

import (
	"context"
)

var actorCtxKey = &contextKey{"actor"}

type contextKey struct {
	name string
}

// WithActor sets the acting user in the given context. The gate attaches the
// resolved user here; handlers must not reach for any other source of
// identity.
func WithActor(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, actorCtxKey, user)
}

// ActorFromContext finds the acting user in the context
func ActorFromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(actorCtxKey).(*User)
	return raw, ok
}
