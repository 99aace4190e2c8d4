package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/pastebin-backend/internal/config"
	"github.com/AnshRaj112/pastebin-backend/internal/jsonbin"
	"github.com/AnshRaj112/pastebin-backend/internal/models"
)

// UserService manages user records. All users live in one shared bin as
// {users: [...]}; every operation is a whole-array read-modify-write with no
// concurrency control, so two concurrent registrations interleaved between
// read and write can both succeed with the same username. The store's
// per-document write is the only atomicity there is.
type UserService struct {
	store      *jsonbin.Client
	usersBinID string
}

func NewUserService(store *jsonbin.Client, cfg *config.Config) *UserService {
	return &UserService{store: store, usersBinID: cfg.UsersBinID}
}

func (s *UserService) loadUsers(ctx context.Context) ([]models.User, error) {
	record, err := s.store.ReadBin(ctx, s.usersBinID)
	if err != nil {
		return nil, err
	}
	var doc models.UsersDocument
	if err := json.Unmarshal(record, &doc); err != nil {
		return nil, err
	}
	return doc.Users, nil
}

func (s *UserService) saveUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return s.store.UpdateBin(ctx, s.usersBinID, models.UsersDocument{Users: users})
}

// Register appends a new user to the shared bin. Username matching is exact
// and case-sensitive. The users bin being unreadable is treated as an empty
// user list, matching the bootstrap behavior of a fresh deployment.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		users = nil
	}

	for _, u := range users {
		if u.Username == username {
			return nil, ErrConflict
		}
	}

	id := time.Now().UnixMilli()
	for hasUserID(users, strconv.FormatInt(id, 10)) {
		id++
	}

	user := models.User{
		ID:          strconv.FormatInt(id, 10),
		Username:    username,
		Password:    password, // stored as submitted; see DESIGN.md
		Name:        username,
		Description: "",
		CreatedAt:   nowISO(),
	}
	users = append(users, user)

	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return &user, nil
}

// hasUserID reports whether any existing user already carries the id.
// IDs are wall-clock millisecond strings, so back-to-back registrations
// can land on the same tick.
func hasUserID(users []models.User, id string) bool {
	for i := range users {
		if users[i].ID == id {
			return true
		}
	}
	return false
}

// Authenticate scans for an exact username+password match. The same
// ErrInvalidCredentials comes back for a wrong password and for an unknown
// username, so callers cannot learn whether a username exists.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username == username && users[i].Password == password {
			return &users[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

// GetByUsername returns the public profile for a username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.PublicProfile, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username == username {
			return users[i].Public(), nil
		}
	}
	return nil, ErrNotFound
}

// UpdateProfile sets the display name and description of the target user.
// Only the identity whose username equals the target may update; the username
// itself is immutable. The whole array is written back.
func (s *UserService) UpdateProfile(ctx context.Context, username, name, description string, identity *Identity) (*models.PublicProfile, error) {
	if identity == nil || identity.Username != username {
		return nil, ErrUnauthorized
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range users {
		if users[i].Username == username {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	users[idx].Name = strings.TrimSpace(name)
	users[idx].Description = strings.TrimSpace(description)
	users[idx].UpdatedAt = nowISO()

	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return users[idx].Public(), nil
}

// mapStoreErr converts the store's not-found into the service sentinel.
func mapStoreErr(err error) error {
	if errors.Is(err, jsonbin.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// nowISO formats the current time the way the stored records expect
// (RFC 3339 UTC with millisecond precision).
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
