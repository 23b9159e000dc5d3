package middleware

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/trendwear/storefront/internal/rest"
)

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (w gzipResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func GzipHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") == "gzip" {
			gzr, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(rw, "Failed to create gzip reader", http.StatusBadRequest)
				return
			}
			defer gzr.Close()
			r.Body = io.NopCloser(gzr)
		}

		if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			rw.Header().Set("Content-Encoding", "gzip")
			gzw := gzip.NewWriter(rw)
			defer gzw.Close()

			gzrw := gzipResponseWriter{Writer: gzw, ResponseWriter: rw}
			next.ServeHTTP(gzrw, r)
		} else {
			next.ServeHTTP(rw, r)
		}
	})
}

const RoleAdmin = "admin"

// Claims carries the acting user id in the subject plus a role used to
// gate the admin surface.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type ctxKeyUserID struct{}
type ctxKeyRole struct{}

// Auth reads the token from the custom Token header, verifies it and puts
// the acting user id and role on the request context. Missing token is
// 401, a broken or expired one is 400.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get("Token")
			if tokenStr == "" {
				rest.Error(w, http.StatusUnauthorized, "Not Authorized. Login Again.")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil || !token.Valid {
				rest.Error(w, http.StatusBadRequest, "Invalid or expired token.")
				return
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				rest.Error(w, http.StatusBadRequest, "Invalid or expired token.")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID{}, userID)
			ctx = context.WithValue(ctx, ctxKeyRole{}, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin sits behind Auth and rejects tokens without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(ctxKeyRole{}).(string)
		if role != RoleAdmin {
			rest.Error(w, http.StatusForbidden, "Admin access required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(ctxKeyUserID{}).(uuid.UUID)
	return id
}

func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKeyUserID{}, userID)
}
