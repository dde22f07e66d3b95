// Package store persists network descriptions.
//
// A [Store] keeps extracted descriptions addressable by ID so they can be
// retrieved, listed and deleted later, e.g. by the HTTP API. Two backends
// are provided: an in-memory store for tests and single-process use, and a
// MongoDB-backed store for shared deployments.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orcalab/speed/pkg/describe"
	"github.com/orcalab/speed/pkg/errors"
)

// Record is a stored description with its identifying metadata.
type Record struct {
	ID          string                `json:"id" bson:"_id"`
	Name        string                `json:"name" bson:"name"`
	CreatedAt   time.Time             `json:"created_at" bson:"created_at"`
	Description *describe.Description `json:"description" bson:"description"`
}

// Store persists network descriptions.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores a description under a fresh ID and returns the record.
	Put(ctx context.Context, name string, desc *describe.Description) (*Record, error)

	// Get retrieves a record by ID. Returns an error with code
	// DESCRIPTION_NOT_FOUND when no record exists.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by ID. Returns an error with code
	// DESCRIPTION_NOT_FOUND when no record exists.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, name string, desc *describe.Description) (*Record, error) {
	rec := &Record{
		ID:          NewID(),
		Name:        name,
		CreatedAt:   time.Now().UTC(),
		Description: desc,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return rec, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeDescriptionNotFound, "description %s not found", id)
	}
	return rec, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return errors.New(errors.ErrCodeDescriptionNotFound, "description %s not found", id)
	}
	delete(s.records, id)
	return nil
}

// Close implements Store. It is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
