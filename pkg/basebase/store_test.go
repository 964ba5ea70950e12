package basebase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/basebase-ai/basebase-go/pkg/auth"
	"github.com/basebase-ai/basebase-go/pkg/docpath"
	"github.com/basebase-ai/basebase-go/pkg/wire"
)

const (
	testProject    = "proj"
	testAPIKey     = "bb_proj_secret"
	testUpdateTime = "2024-05-06T07:08:09.123Z"
)

var testNow = time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC)

// fakeStore is an in-memory document store speaking the wire protocol.
type fakeStore struct {
	mu       sync.Mutex
	docs     map[string]wire.Document
	nextID   int
	requests []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]wire.Document{}}
}

func (s *fakeStore) put(path string, fields map[string]wire.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = wire.Document{Name: path, Fields: fields, CreateTime: testUpdateTime, UpdateTime: testUpdateTime}
}

func (s *fakeStore) get(path string) (wire.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[path]
	return doc, ok
}

func (s *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+testAPIKey {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing or invalid API key"})
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/")
	s.requests = append(s.requests, r.Method+" "+path)
	isCollection := len(docpath.Split(path))%2 == 0

	switch {
	case r.Method == http.MethodGet && isCollection:
		var docs []wire.Document
		for p, doc := range s.docs {
			if docpath.Dir(p) == path {
				docs = append(docs, doc)
			}
		}
		if len(docs) == 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "collection not found"})
			return
		}
		writeJSON(w, http.StatusOK, wire.ListResponse{Documents: docs})

	case r.Method == http.MethodGet:
		doc, ok := s.docs[path]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
			return
		}
		writeJSON(w, http.StatusOK, doc)

	case r.Method == http.MethodPost && isCollection:
		var doc wire.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.nextID++
		doc.Name = fmt.Sprintf("%s/srv%03d", path, s.nextID)
		doc.CreateTime, doc.UpdateTime = testUpdateTime, testUpdateTime
		s.docs[doc.Name] = doc
		writeJSON(w, http.StatusOK, doc)

	case r.Method == http.MethodPut || r.Method == http.MethodPatch:
		var doc wire.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		existing, ok := s.docs[path]
		if r.Method == http.MethodPatch {
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
				return
			}
			for k, v := range doc.Fields {
				existing.Fields[k] = v
			}
			doc = existing
		}
		doc.Name = path
		doc.CreateTime, doc.UpdateTime = testUpdateTime, testUpdateTime
		s.docs[path] = doc
		writeJSON(w, http.StatusOK, doc)

	case r.Method == http.MethodDelete:
		delete(s.docs, path)
		w.WriteHeader(http.StatusNoContent)

	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// newTestClient starts a fake store and returns a client wired to it.
func newTestClient(t *testing.T) (*Client, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL+"/v1", testProject,
		WithAuth(auth.APIKey(testAPIKey)),
		WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	return client, store
}
