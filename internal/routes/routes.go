package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/pastebin-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/login", handlers.Login)
	r.Post("/api/auth/logout", handlers.Logout)
	r.Get("/api/auth/me", handlers.GetMe)

	// Paste routes
	r.Post("/api/pastes", handlers.CreatePaste)
	r.Get("/api/pastes/{id}", handlers.GetPaste)
	r.Put("/api/pastes/{id}", handlers.UpdatePaste)
	r.Delete("/api/pastes/{id}", handlers.DeletePaste)

	// Dashboard: the signed-in user's own pastes
	r.Get("/api/user/pastes", handlers.GetMyPastes)

	// Public profile routes
	r.Get("/api/profile/{username}", handlers.GetProfile)
	r.Put("/api/profile/{username}", handlers.UpdateProfile)
	r.Get("/api/profile/{username}/pastes", handlers.GetProfilePastes)
}
