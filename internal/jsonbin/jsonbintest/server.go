// Package jsonbintest provides an in-memory fake of the JSONBin v3 API for
// tests: bins keyed by id, collection membership, and per-bin failure
// injection.
package jsonbintest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// APIKey is the master key the fake server accepts.
const APIKey = "test-master-key"

type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	bins        map[string]json.RawMessage
	collections map[string][]string
	failing     map[string]bool
	nextID      int
	requests    int
}

func New() *Server {
	s := &Server{
		bins:        make(map[string]json.RawMessage),
		collections: make(map[string][]string),
		failing:     make(map[string]bool),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the base URL to use as JSONBIN_BASE_URL.
func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

// Requests returns how many requests the server has seen.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// SeedBin stores a record under a fixed bin id.
func (s *Server) SeedBin(binID string, record interface{}) {
	data, err := json.Marshal(record)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bins[binID] = data
}

// SeedCollectionBin stores a record and registers it in a collection.
func (s *Server) SeedCollectionBin(collectionID, binID string, record interface{}) {
	s.SeedBin(binID, record)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collectionID] = append(s.collections[collectionID], binID)
}

// FailBin makes every read of the given bin return 500.
func (s *Server) FailBin(binID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[binID] = true
}

// Bin decodes the stored record for a bin into dest. Returns false when the
// bin does not exist.
func (s *Server) Bin(binID string, dest interface{}) bool {
	s.mu.Lock()
	data, ok := s.bins[binID]
	s.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		panic(err)
	}
	return true
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++

	if r.Header.Get("X-Master-Key") != APIKey {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/b":
		s.createBin(w, r)
	case strings.HasPrefix(r.URL.Path, "/b/"):
		s.binByID(w, r, strings.TrimPrefix(r.URL.Path, "/b/"))
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/c/") && strings.HasSuffix(r.URL.Path, "/bins"):
		collectionID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/c/"), "/bins")
		metas := make([]map[string]string, 0, len(s.collections[collectionID]))
		for _, id := range s.collections[collectionID] {
			metas = append(metas, map[string]string{"id": id})
		}
		json.NewEncoder(w).Encode(metas)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) createBin(w http.ResponseWriter, r *http.Request) {
	var record json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
		return
	}

	s.nextID++
	binID := fmt.Sprintf("bin-%04d", s.nextID)
	s.bins[binID] = record
	if collectionID := r.Header.Get("X-Collection-Id"); collectionID != "" {
		s.collections[collectionID] = append(s.collections[collectionID], binID)
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"metadata": map[string]string{"id": binID},
	})
}

func (s *Server) binByID(w http.ResponseWriter, r *http.Request, binID string) {
	if s.failing[binID] {
		http.Error(w, `{"message":"internal error"}`, http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		record, ok := s.bins[binID]
		if !ok {
			http.Error(w, `{"message":"bin not found"}`, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"record":   record,
			"metadata": map[string]string{"id": binID},
		})
	case http.MethodPut:
		if _, ok := s.bins[binID]; !ok {
			http.Error(w, `{"message":"bin not found"}`, http.StatusNotFound)
			return
		}
		var record json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
			return
		}
		s.bins[binID] = record
		json.NewEncoder(w).Encode(map[string]interface{}{
			"metadata": map[string]string{"id": binID},
		})
	case http.MethodDelete:
		if _, ok := s.bins[binID]; !ok {
			http.Error(w, `{"message":"bin not found"}`, http.StatusNotFound)
			return
		}
		delete(s.bins, binID)
		for collectionID, ids := range s.collections {
			for i, id := range ids {
				if id == binID {
					s.collections[collectionID] = append(ids[:i], ids[i+1:]...)
					break
				}
			}
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
	default:
		http.Error(w, `{"message":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}
