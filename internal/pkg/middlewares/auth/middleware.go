package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"waste-service/internal/entities"
	"waste-service/internal/generated/dto"
	"waste-service/pkg/logger"
)

type actorKey struct{}

func WithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(entities.Actor)
	return actor, ok
}

// Middleware rejects requests without a valid bearer token and stores the
// caller in the request context.
func Middleware(log handlerLogger, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				reject(w, log, http.StatusUnauthorized, ErrMissingToken.Error())
				return
			}

			actor, err := ParseToken(secret, raw)
			if err != nil {
				log.With(
					logger.NewField("path", r.URL.Path),
					logger.NewField("error", err),
				).Warn("rejected token")
				reject(w, log, http.StatusUnauthorized, ErrInvalidToken.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireRoles answers 403 unless the authenticated caller has one of roles.
func RequireRoles(log handlerLogger, roles ...entities.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				reject(w, log, http.StatusUnauthorized, ErrMissingToken.Error())
				return
			}
			if !actor.HasRole(roles...) {
				reject(w, log, http.StatusForbidden, "role "+actor.Role.String()+" is not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reject(w http.ResponseWriter, log handlerLogger, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dto.Envelope{Success: false, Message: message}); err != nil {
		log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}
