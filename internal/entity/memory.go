package entity

import (
	"context"
	"fmt"
	"sync"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// MemoryStore keeps entity records in memory.
type MemoryStore struct {
	schema Schema

	mu      sync.RWMutex
	records map[string]typeddata.EntityRecord
}

// NewMemoryStore creates a store holding records. Records of unregistered
// entity types are rejected.
func NewMemoryStore(schema Schema, records ...typeddata.EntityRecord) (*MemoryStore, error) {
	s := &MemoryStore{
		schema:  schema,
		records: make(map[string]typeddata.EntityRecord, len(records)),
	}
	for _, rec := range records {
		if err := s.Save(context.Background(), rec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load returns the entity, building it against the current schema.
func (s *MemoryStore) Load(ctx context.Context, entityType, id string) (typeddata.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.schema.HasEntityType(entityType) {
		return nil, typeddata.UnknownEntityType(entityType)
	}

	s.mu.RLock()
	rec, ok := s.records[key(entityType, id)]
	s.mu.RUnlock()
	if !ok {
		return nil, typeddata.EntityNotFound(entityType, id)
	}
	return Build(s.schema, rec)
}

// Save stores rec, replacing an existing record with the same type and id.
func (s *MemoryStore) Save(ctx context.Context, rec typeddata.EntityRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.schema.FieldDefinitions(rec.Type, rec.Bundle); err != nil {
		return fmt.Errorf("failed to save %s %q: %w", rec.Type, rec.ID, err)
	}
	rec.Values = rec.Values.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key(rec.Type, rec.ID)] = rec
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func key(entityType, id string) string {
	return entityType + "\x00" + id
}
