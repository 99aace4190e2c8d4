package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/AnshRaj112/pastebin-backend/internal/services"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo is the identity slice of a user returned after login/register.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type AuthResponse struct {
	User UserInfo `json:"user"`
}

// setSessionCookie issues a token for the user and attaches it as the
// HTTP-only session cookie. Secure is set in production so the cookie only
// travels over HTTPS there.
func setSessionCookie(w http.ResponseWriter, userID, username string) error {
	token, err := sessions.Issue(userID, username)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     services.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.SessionDuration / time.Second),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Register creates an account and signs the new user in.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	user, err := userService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			respondError(w, http.StatusConflict, "Username already exists")
			return
		}
		log.Printf("Register error: %v", err)
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	if err := setSessionCookie(w, user.ID, user.Username); err != nil {
		log.Printf("Register error: %v", err)
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	respondJSON(w, http.StatusOK, AuthResponse{User: UserInfo{ID: user.ID, Username: user.Username}})
}

// Login authenticates a user and starts a session.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Login error: %v", err)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := setSessionCookie(w, user.ID, user.Username); err != nil {
		log.Printf("Login error: %v", err)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	respondJSON(w, http.StatusOK, AuthResponse{User: UserInfo{ID: user.ID, Username: user.Username}})
}

// Logout clears the session cookie. The token itself stays valid until its
// natural expiry; there is no server-side revocation.
func Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     services.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetMe returns the identity of the current session.
func GetMe(w http.ResponseWriter, r *http.Request) {
	identity := sessions.Resolve(r)
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	respondJSON(w, http.StatusOK, AuthResponse{User: UserInfo{ID: identity.UserID, Username: identity.Username}})
}
