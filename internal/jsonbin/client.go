package jsonbin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AnshRaj112/pastebin-backend/internal/config"
)

// ErrNotFound is returned when the requested bin does not exist.
var ErrNotFound = errors.New("jsonbin: bin not found")

// Client talks to the JSONBin v3 API. It is a thin wrapper: no retries, no
// backoff; any non-success status other than 404 surfaces as a generic error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.JSONBinBaseURL,
		apiKey:     cfg.JSONBinAPIKey,
	}
}

// binEnvelope is the JSONBin response wrapper for single-bin reads.
type binEnvelope struct {
	Record   json.RawMessage `json:"record"`
	Metadata struct {
		ID string `json:"id"`
	} `json:"metadata"`
}

// BinMeta is one entry in a collection listing.
type BinMeta struct {
	ID string `json:"id"`
}

func (c *Client) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Master-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// ReadBin fetches a bin and returns its record payload.
func (c *Client) ReadBin(ctx context.Context, binID string) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("%s/b/%s", c.baseURL, binID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsonbin: read bin %s: %w", binID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("jsonbin: read bin %s: unexpected status %d", binID, resp.StatusCode)
	}

	var envelope binEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("jsonbin: decode bin %s: %w", binID, err)
	}
	return envelope.Record, nil
}

// UpdateBin replaces a bin's record with the given value.
func (c *Client) UpdateBin(ctx context.Context, binID string, record interface{}) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("%s/b/%s", c.baseURL, binID), body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jsonbin: update bin %s: %w", binID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("jsonbin: update bin %s: unexpected status %d", binID, resp.StatusCode)
	}
	return nil
}

// CreateBin creates a new bin inside the given collection and returns the
// store-assigned bin id.
func (c *Client) CreateBin(ctx context.Context, record interface{}, collectionID string) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/b", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Collection-Id", collectionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("jsonbin: create bin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("jsonbin: create bin: unexpected status %d", resp.StatusCode)
	}

	var envelope binEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("jsonbin: decode create response: %w", err)
	}
	if envelope.Metadata.ID == "" {
		return "", errors.New("jsonbin: create response missing bin id")
	}
	return envelope.Metadata.ID, nil
}

// DeleteBin removes a bin.
func (c *Client) DeleteBin(ctx context.Context, binID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/b/%s", c.baseURL, binID), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jsonbin: delete bin %s: %w", binID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("jsonbin: delete bin %s: unexpected status %d", binID, resp.StatusCode)
	}
	return nil
}

// ListCollection returns the ids of every bin in a collection.
func (c *Client) ListCollection(ctx context.Context, collectionID string) ([]BinMeta, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("%s/c/%s/bins", c.baseURL, collectionID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsonbin: list collection %s: %w", collectionID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("jsonbin: list collection %s: unexpected status %d", collectionID, resp.StatusCode)
	}

	var bins []BinMeta
	if err := json.NewDecoder(resp.Body).Decode(&bins); err != nil {
		return nil, fmt.Errorf("jsonbin: decode collection %s: %w", collectionID, err)
	}
	return bins, nil
}
