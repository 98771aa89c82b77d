package middleware

import (
	"context"
	"fmt"
	"net/http"

	"rezerv/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	jwt.RegisteredClaims
}

// Authenticate verifies the bearer token and stores the user id in the
// request context. The engine trusts this identity; it does not issue
// tokens itself.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
			return globals.JwtSecret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		next(w, r.WithContext(ctx), ps)
	}
}

// ValidateJWT parses a "Bearer <token>" header value and returns its
// claims. Used where the Authenticate wrapper cannot run, such as the
// websocket handshake.
func ValidateJWT(tokenString string) (*Claims, error) {
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// RequesterID pulls the authenticated user id set by Authenticate.
func RequesterID(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}
