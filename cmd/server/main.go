package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/pastebin-backend/internal/config"
	"github.com/AnshRaj112/pastebin-backend/internal/database"
	"github.com/AnshRaj112/pastebin-backend/internal/handlers"
	"github.com/AnshRaj112/pastebin-backend/internal/jsonbin"
	"github.com/AnshRaj112/pastebin-backend/internal/middleware"
	"github.com/AnshRaj112/pastebin-backend/internal/routes"
	"github.com/AnshRaj112/pastebin-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration (fails fast when store credentials or the signing
	// secret are missing; there are no fallback secrets)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Connect to Redis (abuse rate limiting only; all domain state lives in
	// the external document store)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}
	defer database.DisconnectRedis()

	// Wire services: the JSONBin client is the only persistence path
	store := jsonbin.NewClient(cfg)
	tokens := services.NewTokenService(cfg)
	sessions := services.NewSessionService(tokens)
	users := services.NewUserService(store, cfg)
	pastes := services.NewPasteService(store, users, cfg)
	handlers.Init(cfg, sessions, users, pastes)

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RequestID)

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → AuthRateLimit
	// Non-production: Redis-based abuse rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, host check, per-IP + auth rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	log.Printf("🚀 Pastebin backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
