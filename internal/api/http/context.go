package http

import (
	"context"

	"pawnledger-backend/internal/domain"
)

type actorKey struct{}

// WithActor stores the authenticated caller on the request context.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller injected by the auth middleware.
func ActorFromContext(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	if !ok || actor.UserID == 0 {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	return actor, nil
}
