// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

type (
	guildKey       struct{}
	actorKey       struct{}
	interactionKey struct{}
)

// WithGuildID returns a context carrying the guild the request came from.
func WithGuildID(ctx context.Context, guildID string) context.Context {
	return context.WithValue(ctx, guildKey{}, guildID)
}

// GuildFromContext returns the guild ID from context, or empty string if not set.
func GuildFromContext(ctx context.Context) string {
	v, _ := ctx.Value(guildKey{}).(string)
	return v
}

// WithActorID returns a context with the invoking member's ID embedded.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the actor ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	v, _ := ctx.Value(actorKey{}).(string)
	return v
}

// WithInteractionID tags the context with the platform interaction ID.
func WithInteractionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, interactionKey{}, id)
}

// InteractionFromContext returns the interaction ID from context, or empty string if not set.
func InteractionFromContext(ctx context.Context) string {
	v, _ := ctx.Value(interactionKey{}).(string)
	return v
}
