package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AnshRaj112/pastebin-backend/internal/config"
	"github.com/AnshRaj112/pastebin-backend/internal/services"
)

var (
	cfg          *config.Config
	sessions     *services.SessionService
	userService  *services.UserService
	pasteService *services.PasteService
)

// Init wires the handler package to its services. Must be called once at
// startup before any route is served.
func Init(c *config.Config, s *services.SessionService, u *services.UserService, p *services.PasteService) {
	cfg = c
	sessions = s
	userService = u
	pasteService = p
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
