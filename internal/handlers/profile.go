package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/pastebin-backend/internal/models"
	"github.com/AnshRaj112/pastebin-backend/internal/services"
)

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProfileResponse struct {
	Profile *models.PublicProfile `json:"profile"`
}

// profileUsername returns the username path segment with any leading "@"
// stripped, so /api/profile/@alice and /api/profile/alice are the same page.
func profileUsername(r *http.Request) string {
	return strings.TrimPrefix(chi.URLParam(r, "username"), "@")
}

// GetProfile returns a user's public profile.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := userService.GetByUsername(r.Context(), profileUsername(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Error loading profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{Profile: profile})
}

// UpdateProfile sets the display name and description of the signed-in
// user's own profile.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	username := profileUsername(r)
	identity := sessions.Resolve(r)
	if identity == nil || identity.Username != username {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	profile, err := userService.UpdateProfile(r.Context(), username, req.Name, req.Description, identity)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, ProfileResponse{Profile: profile})
	case errors.Is(err, services.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	default:
		log.Printf("Error updating profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to update profile")
	}
}

// GetProfilePastes lists a user's pastes for the public profile page.
// Unknown usernames are 404, never an empty list.
func GetProfilePastes(w http.ResponseWriter, r *http.Request) {
	pastes, err := pasteService.ListByUsername(r.Context(), profileUsername(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Error loading user pastes: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load pastes")
		return
	}
	respondJSON(w, http.StatusOK, PastesResponse{Pastes: pastes})
}
