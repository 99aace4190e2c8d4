package services

import (
	"testing"

	"github.com/AnshRaj112/pastebin-backend/internal/config"
	"github.com/AnshRaj112/pastebin-backend/internal/jsonbin"
	"github.com/AnshRaj112/pastebin-backend/internal/jsonbin/jsonbintest"
	"github.com/AnshRaj112/pastebin-backend/internal/models"
)

const (
	testUsersBinID   = "users-bin"
	testCollectionID = "pastes-collection"
)

// newTestEnv builds a user and paste service over a fake JSONBin server
// seeded with an empty users bin.
func newTestEnv(t *testing.T) (*jsonbintest.Server, *UserService, *PasteService) {
	t.Helper()

	srv := jsonbintest.New()
	t.Cleanup(srv.Close)
	srv.SeedBin(testUsersBinID, models.UsersDocument{Users: []models.User{}})

	cfg := &config.Config{
		JSONBinAPIKey:      jsonbintest.APIKey,
		JSONBinBaseURL:     srv.URL(),
		UsersBinID:         testUsersBinID,
		PastesCollectionID: testCollectionID,
		JWTSecret:          "test-secret",
	}

	store := jsonbin.NewClient(cfg)
	users := NewUserService(store, cfg)
	pastes := NewPasteService(store, users, cfg)
	return srv, users, pastes
}

func strPtr(s string) *string { return &s }
