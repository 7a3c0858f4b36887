// Package middleware provides HTTP middleware that resolves the owner of a
// request, either from a verified bearer token or from a trusted header.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// ownerKey is the context key for storing the request owner.
const ownerKey ContextKey = "owner"

// OwnerHeader carries the owner when token verification is disabled.
const OwnerHeader = "X-Owner"

// AnonymousOwner is used when no owner header is sent.
const AnonymousOwner = "anonymous"

const maxOwnerLen = 128

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (OwnerGetter, error)
}

// OwnerGetter extracts the owner from token claims.
type OwnerGetter interface {
	GetOwner() string
}

// AuthMiddleware creates middleware that validates bearer tokens and stores
// the token subject as the request owner.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Parse Bearer token, case-insensitive prefix
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			owner := claims.GetOwner()
			if owner == "" || len(owner) > maxOwnerLen {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

// HeaderOwnerMiddleware trusts the X-Owner header. It is used when token
// verification is disabled, e.g. behind a gateway that already authenticated
// the caller. A missing header selects AnonymousOwner.
func HeaderOwnerMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner := strings.TrimSpace(r.Header.Get(OwnerHeader))
			if owner == "" {
				owner = AnonymousOwner
			}
			if len(owner) > maxOwnerLen {
				http.Error(w, "owner header too long", http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

// WithOwner returns a context carrying owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// GetOwner extracts the request owner from the request context.
func GetOwner(r *http.Request) (string, error) {
	owner, ok := r.Context().Value(ownerKey).(string)
	if !ok || owner == "" {
		return "", fmt.Errorf("owner not found in request context")
	}
	return owner, nil
}
