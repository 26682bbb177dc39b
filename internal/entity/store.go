// Package entity provides the stores that load entities for exploration.
// Stores keep raw field values only; field definitions always come from the
// registry schema, so a loaded entity reflects the current catalogue.
package entity

import (
	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// Schema provides the field definitions of entity types.
type Schema interface {
	HasEntityType(entityType string) bool
	// FieldDefinitions returns base fields followed by the bundle's fields.
	FieldDefinitions(entityType, bundle string) ([]typeddata.FieldDefinition, error)
}

// Build binds a stored record to its schema.
func Build(schema Schema, rec typeddata.EntityRecord) (typeddata.Entity, error) {
	defs, err := schema.FieldDefinitions(rec.Type, rec.Bundle)
	if err != nil {
		return nil, err
	}
	return typeddata.NewContentEntity(rec, defs), nil
}
