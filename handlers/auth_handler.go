package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler guards the API with a single operator account whose password is
// stored as a bcrypt hash.
type AuthHandler struct {
	User         string
	PasswordHash string
}

func (h *AuthHandler) enabled() bool {
	return h.User != "" && h.PasswordHash != ""
}

func (h *AuthHandler) check(user, password string) bool {
	if subtle.ConstantTimeCompare([]byte(user), []byte(h.User)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)) == nil
}

// Login handler
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &creds) {
		return
	}

	if !h.enabled() || !h.check(creds.Username, creds.Password) {
		writeJSON(w, http.StatusUnauthorized, ApiResponse{
			Success: false,
			Message: "Invalid username or password",
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Login successful",
		Data:    map[string]string{"name": h.User},
	})
}

// RequireAuth enforces HTTP Basic credentials. With no account configured the
// API is left open.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	if !h.enabled() {
		log.Warn().Msg("AUTH_USER or AUTH_PASSWORD_HASH not set, API is unauthenticated")
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || !h.check(u, p) {
			w.Header().Set("WWW-Authenticate", `Basic realm="abinterior"`)
			writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
