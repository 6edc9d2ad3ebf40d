package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/vadimbarashkov/link-shortener/internal/auth"
)

type sessionVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type userIDKey struct{}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}

// sessionToken prefers a bearer token over the session cookie.
func sessionToken(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}

	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}

	return ""
}

// sessionMiddleware stores the verified user id in the request context.
// Requests with a missing or unverifiable token continue as signed out.
func sessionMiddleware(verifier sessionVerifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				httplog.LogEntrySetField(r.Context(), "session_err", slog.AnyValue(err))
				next.ServeHTTP(w, r)
				return
			}

			httplog.LogEntrySetField(r.Context(), "user_id", slog.StringValue(claims.UserID()))
			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), claims.UserID())))
		})
	}
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userIDFromContext(r.Context()); !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, unauthorizedResponse)
			return
		}

		next.ServeHTTP(w, r)
	})
}
