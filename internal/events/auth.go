package events

import (
	"log"
	"net/http"
	"strings"

	"fixsmart/internal/auth"
)

// AuthMiddleware validates the admin JWT during the Socket.IO handshake.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			log.Printf("[Events] Invalid token from %s: %v", r.RemoteAddr, err)
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		log.Printf("[Events] Authenticated admin: %s (ID: %d)", claims.Username, claims.UID)
		next.ServeHTTP(w, r)
	})
}

// extractToken pulls the JWT from the handshake request.
// Priority: token query parameter, then Authorization header.
func extractToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	return ""
}
