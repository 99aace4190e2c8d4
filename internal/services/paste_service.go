package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/AnshRaj112/pastebin-backend/internal/config"
	"github.com/AnshRaj112/pastebin-backend/internal/jsonbin"
	"github.com/AnshRaj112/pastebin-backend/internal/models"
)

// PasteService manages paste bins inside the shared collection. Mutations are
// read-then-check-then-write with no compare-and-swap: a concurrent edit is
// last-write-wins, and an ownership check can pass and still race with a
// concurrent delete.
type PasteService struct {
	store        *jsonbin.Client
	users        *UserService
	collectionID string
}

func NewPasteService(store *jsonbin.Client, users *UserService, cfg *config.Config) *PasteService {
	return &PasteService{store: store, users: users, collectionID: cfg.PastesCollectionID}
}

// Create stores a new paste and returns its id. Content is rejected before
// any store call when empty after trimming. Owner fields are stamped from the
// identity, or stay null for anonymous pastes.
func (s *PasteService) Create(ctx context.Context, content string, identity *Identity) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}

	record := models.PasteRecord{
		Content:   content,
		CreatedAt: nowISO(),
	}
	if identity != nil {
		record.UserID = &identity.UserID
		record.Username = &identity.Username
	}

	return s.store.CreateBin(ctx, record, s.collectionID)
}

// Get fetches a paste by id.
func (s *PasteService) Get(ctx context.Context, pasteID string) (*models.Paste, error) {
	record, err := s.store.ReadBin(ctx, pasteID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	paste := &models.Paste{ID: pasteID}
	if err := json.Unmarshal(record, &paste.PasteRecord); err != nil {
		return nil, err
	}
	return paste, nil
}

// Update replaces a paste's content after an ownership check. The check
// compares the stored owner id against the caller's id exactly; a paste with
// a null owner (anonymous) never matches any identity, so anonymous pastes
// are permanently immutable.
func (s *PasteService) Update(ctx context.Context, pasteID, content string, identity *Identity) error {
	if identity == nil {
		return ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}

	paste, err := s.Get(ctx, pasteID)
	if err != nil {
		return err
	}
	if paste.UserID == nil || *paste.UserID != identity.UserID {
		return ErrForbidden
	}

	paste.Content = content
	paste.UpdatedAt = nowISO()
	return s.store.UpdateBin(ctx, pasteID, paste.PasteRecord)
}

// Delete removes a paste after the same ownership check as Update, with the
// same consequence for anonymous pastes.
func (s *PasteService) Delete(ctx context.Context, pasteID string, identity *Identity) error {
	if identity == nil {
		return ErrUnauthorized
	}

	paste, err := s.Get(ctx, pasteID)
	if err != nil {
		return err
	}
	if paste.UserID == nil || *paste.UserID != identity.UserID {
		return ErrForbidden
	}

	return mapStoreErr(s.store.DeleteBin(ctx, pasteID))
}

// ListByUser enumerates every bin in the collection and keeps the ones owned
// by the given user id, newest first. Best-effort: a bin that fails to fetch
// is logged and skipped rather than failing the whole listing. O(N) in the
// collection size with no pagination.
func (s *PasteService) ListByUser(ctx context.Context, userID string) ([]models.Paste, error) {
	bins, err := s.store.ListCollection(ctx, s.collectionID)
	if err != nil {
		return nil, err
	}

	pastes := []models.Paste{}
	for _, bin := range bins {
		record, err := s.store.ReadBin(ctx, bin.ID)
		if err != nil {
			log.Printf("skipping bin %s during listing: %v", bin.ID, err)
			continue
		}

		var paste models.Paste
		if err := json.Unmarshal(record, &paste.PasteRecord); err != nil {
			log.Printf("skipping bin %s during listing: %v", bin.ID, err)
			continue
		}
		if paste.UserID == nil || *paste.UserID != userID {
			continue
		}
		paste.ID = bin.ID
		pastes = append(pastes, paste)
	}

	sort.Slice(pastes, func(i, j int) bool {
		return parseISO(pastes[i].CreatedAt).After(parseISO(pastes[j].CreatedAt))
	})
	return pastes, nil
}

// ListByUsername resolves the username to a user id and lists that user's
// pastes. An unknown username is ErrNotFound, never an empty list.
func (s *PasteService) ListByUsername(ctx context.Context, username string) ([]models.Paste, error) {
	profile, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.ListByUser(ctx, profile.ID)
}

func parseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
