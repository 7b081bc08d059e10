package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/pkg/apperrors"
)

// MemoryStore keeps user documents in process. Documents are copied on the way in
// and out, so callers never share state with the store.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]*models.UserDocument
	fetchErrs map[string]error
	writeErrs map[string]error
}

// NewMemoryStore creates a store holding docs.
func NewMemoryStore(docs ...*models.UserDocument) *MemoryStore {
	s := &MemoryStore{
		users:     make(map[string]*models.UserDocument),
		fetchErrs: make(map[string]error),
		writeErrs: make(map[string]error),
	}
	for _, doc := range docs {
		s.Put(doc)
	}
	return s
}

// LoadMemoryStore seeds a store from a JSON array of user documents.
func LoadMemoryStore(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %v", err)
	}
	var docs []*models.UserDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %v", err)
	}
	return NewMemoryStore(docs...), nil
}

// Put stores a copy of doc, replacing any document with the same id.
func (s *MemoryStore) Put(doc *models.UserDocument) {
	c := doc.Clone()
	c.Normalize()
	s.mu.Lock()
	s.users[c.ID] = c
	s.mu.Unlock()
}

// Get returns a copy of the stored document.
func (s *MemoryStore) Get(userID string) (*models.UserDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.users[userID]
	return doc.Clone(), ok
}

// FailFetch makes every fetch of userID return err. A nil err clears it.
func (s *MemoryStore) FailFetch(userID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fetchErrs, userID)
		return
	}
	s.fetchErrs[userID] = err
}

// FailWrite makes every write of userID return err. A nil err clears it.
func (s *MemoryStore) FailWrite(userID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.writeErrs, userID)
		return
	}
	s.writeErrs[userID] = err
}

func (s *MemoryStore) FetchUser(ctx context.Context, userID string) (*models.UserDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Network(err, "request cancelled")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.fetchErrs[userID]; err != nil {
		return nil, err
	}
	doc, ok := s.users[userID]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return doc.Clone(), nil
}

func (s *MemoryStore) FetchUserByUsername(ctx context.Context, username string) (*models.UserDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Network(err, "request cancelled")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, doc := range s.users {
		if doc.Username != username {
			continue
		}
		if err := s.fetchErrs[id]; err != nil {
			return nil, err
		}
		return doc.Clone(), nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (s *MemoryStore) WriteUser(ctx context.Context, doc *models.UserDocument) error {
	if err := checkWritable(doc); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperrors.Network(err, "request cancelled")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErrs[doc.ID]; err != nil {
		return err
	}
	if _, ok := s.users[doc.ID]; !ok {
		return apperrors.NotFound("user not found")
	}
	c := doc.Clone()
	c.Normalize()
	s.users[c.ID] = c
	return nil
}
