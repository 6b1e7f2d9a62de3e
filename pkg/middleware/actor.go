package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ActorIDKey is the context key for the acting employee or manager ID
	ActorIDKey ContextKey = "actor_id"
)

// ActorMiddleware resolves the acting user from the X-Actor-ID header, set
// by the staff platform's gateway after it authenticates the request.
// Defaults to actor 1 for local development.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorIDStr := r.Header.Get("X-Actor-ID")
		if actorIDStr != "" {
			if actorID, err := strconv.ParseInt(actorIDStr, 10, 64); err == nil && actorID > 0 {
				ctx := context.WithValue(r.Context(), ActorIDKey, actorID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		// Default to actor 1 if no header provided
		ctx := context.WithValue(r.Context(), ActorIDKey, int64(1))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActorID extracts the acting user ID from the request context
func GetActorID(ctx context.Context) (int64, bool) {
	actorID, ok := ctx.Value(ActorIDKey).(int64)
	return actorID, ok
}
