package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/pastebin-backend/internal/config"
	"github.com/AnshRaj112/pastebin-backend/internal/handlers"
	"github.com/AnshRaj112/pastebin-backend/internal/jsonbin"
	"github.com/AnshRaj112/pastebin-backend/internal/jsonbin/jsonbintest"
	"github.com/AnshRaj112/pastebin-backend/internal/models"
	"github.com/AnshRaj112/pastebin-backend/internal/routes"
	"github.com/AnshRaj112/pastebin-backend/internal/services"
)

const (
	testUsersBinID   = "users-bin"
	testCollectionID = "pastes-collection"
)

// newTestServer wires the full handler stack over a fake JSONBin server.
// Handler tests run sequentially because Init sets package state.
func newTestServer(t *testing.T) (*jsonbintest.Server, *chi.Mux) {
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
		Environment:        "test",
	}

	store := jsonbin.NewClient(cfg)
	tokens := services.NewTokenService(cfg)
	sessions := services.NewSessionService(tokens)
	users := services.NewUserService(store, cfg)
	pastes := services.NewPasteService(store, users, cfg)
	handlers.Init(cfg, sessions, users, pastes)

	r := chi.NewRouter()
	routes.SetupRoutes(r)
	return srv, r
}

// doJSON performs a request with a JSON body and optional session cookie.
func doJSON(t *testing.T, router http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerUser registers a user over HTTP and returns its id and session cookie.
func registerUser(t *testing.T, router http.Handler, username, password string) (string, *http.Cookie) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", `{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		User struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie, "register must set the session cookie")
	return resp.User.ID, cookie
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == services.SessionCookieName {
			return c
		}
	}
	return nil
}
