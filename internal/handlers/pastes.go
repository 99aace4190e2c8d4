package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/pastebin-backend/internal/models"
	"github.com/AnshRaj112/pastebin-backend/internal/services"
)

type PasteRequest struct {
	Content string `json:"content"`
}

type CreatePasteResponse struct {
	PasteID string `json:"pasteId"`
}

type PasteResponse struct {
	Paste *models.Paste `json:"paste"`
}

type PastesResponse struct {
	Pastes []models.Paste `json:"pastes"`
}

// CreatePaste stores a new paste. Works with or without a session; an
// anonymous paste gets null owner fields.
func CreatePaste(w http.ResponseWriter, r *http.Request) {
	var req PasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	identity := sessions.Resolve(r)

	pasteID, err := pasteService.Create(r.Context(), req.Content, identity)
	if err != nil {
		if errors.Is(err, services.ErrEmptyContent) {
			respondError(w, http.StatusBadRequest, "Content is required")
			return
		}
		log.Printf("Error creating paste: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create paste")
		return
	}
	respondJSON(w, http.StatusOK, CreatePasteResponse{PasteID: pasteID})
}

// GetPaste returns a paste by id. Public; no session needed.
func GetPaste(w http.ResponseWriter, r *http.Request) {
	paste, err := pasteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Paste not found")
			return
		}
		log.Printf("Error loading paste: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load paste")
		return
	}
	respondJSON(w, http.StatusOK, PasteResponse{Paste: paste})
}

// UpdatePaste replaces a paste's content. Owner only.
func UpdatePaste(w http.ResponseWriter, r *http.Request) {
	identity := sessions.Resolve(r)
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := pasteService.Update(r.Context(), chi.URLParam(r, "id"), req.Content, identity)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, services.ErrEmptyContent):
		respondError(w, http.StatusBadRequest, "Content is required")
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "Paste not found")
	case errors.Is(err, services.ErrForbidden):
		respondError(w, http.StatusForbidden, "You can only edit your own pastes")
	default:
		log.Printf("Error updating paste: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to update paste")
	}
}

// DeletePaste removes a paste. Owner only.
func DeletePaste(w http.ResponseWriter, r *http.Request) {
	identity := sessions.Resolve(r)
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := pasteService.Delete(r.Context(), chi.URLParam(r, "id"), identity)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "Paste not found")
	case errors.Is(err, services.ErrForbidden):
		respondError(w, http.StatusForbidden, "You can only delete your own pastes")
	default:
		log.Printf("Error deleting paste: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete paste")
	}
}

// GetMyPastes lists the pastes of the signed-in user for the dashboard.
func GetMyPastes(w http.ResponseWriter, r *http.Request) {
	identity := sessions.Resolve(r)
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	pastes, err := pasteService.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		log.Printf("Error loading user pastes: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load pastes")
		return
	}
	respondJSON(w, http.StatusOK, PastesResponse{Pastes: pastes})
}
