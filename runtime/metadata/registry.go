package metadata

import (
	"errors"
	"fmt"
	"slices"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// Registry holds a catalogue for introspection queries. It is built once,
// never mutated afterwards and safe for concurrent reads.
//
// Registry implements typeddata.TypeRegistry and typeddata.ConstraintRegistry
// and serves the entity schemas the entity stores build entities from.
type Registry struct {
	catalogue *Catalogue

	// Pre-computed indexes, built by New
	typesByKey    map[string]int
	fieldTypes    map[string]*FieldTypeMetadata
	entityTypes   map[string]*entitySchema
	entityTypeIDs []string
}

type entitySchema struct {
	label   string
	base    []typeddata.FieldDefinition
	bundles []string
	fields  map[string][]typeddata.FieldDefinition // bundle -> bundle fields
}

// Load reads a catalogue file and builds its registry.
func Load(path string) (*Registry, error) {
	cat, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(cat)
}

// New validates the catalogue and builds all indexes.
func New(cat *Catalogue) (*Registry, error) {
	if cat == nil {
		cat = &Catalogue{}
	}
	r := &Registry{
		catalogue:   cat,
		typesByKey:  make(map[string]int, len(cat.Types)),
		fieldTypes:  make(map[string]*FieldTypeMetadata, len(cat.FieldTypes)),
		entityTypes: make(map[string]*entitySchema, len(cat.EntityTypes)),
	}
	if err := r.buildIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) buildIndexes() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidCatalogue, fmt.Sprintf(format, args...)))
	}

	for i, def := range r.catalogue.Types {
		if _, dup := r.typesByKey[def.ID()]; dup {
			invalid("duplicate type %q", def.ID())
			continue
		}
		if def.Class() == "" || def.DefinitionClass() == "" {
			invalid("type %q needs class and definition_class", def.ID())
		}
		r.typesByKey[def.ID()] = i
	}

	for i := range r.catalogue.FieldTypes {
		ft := &r.catalogue.FieldTypes[i]
		r.fieldTypes[ft.Type] = ft
	}

	for _, et := range r.catalogue.EntityTypes {
		if _, dup := r.entityTypes[et.ID]; dup {
			invalid("duplicate entity type %q", et.ID)
			continue
		}
		schema := &entitySchema{
			label:  et.Label,
			fields: make(map[string][]typeddata.FieldDefinition, len(et.Bundles)),
		}
		seen := make(map[string]bool)
		for _, f := range et.BaseFields {
			if seen[f.Name] {
				invalid("%s: duplicate field %q", et.ID, f.Name)
				continue
			}
			seen[f.Name] = true
			schema.base = append(schema.base, typeddata.NewBaseFieldDefinition(et.ID, r.fieldSpec(f)))
		}
		for _, b := range et.Bundles {
			schema.bundles = append(schema.bundles, b.Name)
			bundleSeen := make(map[string]bool)
			for _, f := range b.Fields {
				if seen[f.Name] || bundleSeen[f.Name] {
					invalid("%s.%s: duplicate field %q", et.ID, b.Name, f.Name)
					continue
				}
				bundleSeen[f.Name] = true
				schema.fields[b.Name] = append(schema.fields[b.Name], typeddata.NewFieldConfig(et.ID, b.Name, r.fieldSpec(f)))
			}
		}
		r.entityTypes[et.ID] = schema
		r.entityTypeIDs = append(r.entityTypeIDs, et.ID)
	}

	for i, rec := range r.catalogue.Entities {
		if _, err := r.FieldDefinitions(rec.Type, rec.Bundle); err != nil {
			invalid("entities[%d]: %v", i, err)
		}
		if rec.ID == "" {
			invalid("entities[%d]: missing id", i)
		}
	}

	return errors.Join(errs...)
}

// fieldSpec resolves a declared field against its field type. Property data
// types are not checked here: a dangling key is reported when the field is
// explored.
func (r *Registry) fieldSpec(f FieldMetadata) typeddata.FieldSpec {
	spec := typeddata.FieldSpec{
		Name:        f.Name,
		Label:       f.Label,
		Type:        f.Type,
		Description: f.Description,
		Class:       f.Class,
		Constraints: f.Constraints,
	}
	ft, ok := r.fieldTypes[f.Type]
	if ok {
		spec.Item = typeddata.NewItemDefinition(ft.ItemDataType, ft.Properties...)
		if spec.Class == "" {
			spec.Class = ft.ListClass
		}
	}
	if spec.Class == "" {
		spec.Class = typeddata.DefaultListClass(f.Type)
	}
	return spec
}

// Definitions returns every type definition in catalogue order.
// Returns copies to prevent external mutation.
func (r *Registry) Definitions() []typeddata.TypeDefinition {
	defs := make([]typeddata.TypeDefinition, len(r.catalogue.Types))
	for i, def := range r.catalogue.Types {
		defs[i] = def.Clone()
	}
	return defs
}

// Definition finds a type definition by key.
func (r *Registry) Definition(key string) (typeddata.TypeDefinition, error) {
	i, ok := r.typesByKey[key]
	if !ok {
		return typeddata.TypeDefinition{}, typeddata.UnknownTypeKey(key)
	}
	return r.catalogue.Types[i].Clone(), nil
}

// TypeKeys returns every type key in catalogue order.
func (r *Registry) TypeKeys() []string {
	keys := make([]string, len(r.catalogue.Types))
	for i, def := range r.catalogue.Types {
		keys[i] = def.ID()
	}
	return keys
}

// Constraints returns every constraint definition in catalogue order.
func (r *Registry) Constraints() []typeddata.ConstraintDefinition {
	out := make([]typeddata.ConstraintDefinition, len(r.catalogue.Constraints))
	copy(out, r.catalogue.Constraints)
	return out
}

// EntityTypeIDs returns the registered entity types in catalogue order.
func (r *Registry) EntityTypeIDs() []string {
	ids := make([]string, len(r.entityTypeIDs))
	copy(ids, r.entityTypeIDs)
	return ids
}

// HasEntityType reports whether entityType is registered.
func (r *Registry) HasEntityType(entityType string) bool {
	_, ok := r.entityTypes[entityType]
	return ok
}

// EntityTypeLabel returns the human label of an entity type, its id when unset.
func (r *Registry) EntityTypeLabel(entityType string) string {
	if s, ok := r.entityTypes[entityType]; ok && s.label != "" {
		return s.label
	}
	return entityType
}

// Bundles returns the bundles of an entity type in catalogue order.
func (r *Registry) Bundles(entityType string) ([]string, error) {
	s, ok := r.entityTypes[entityType]
	if !ok {
		return nil, typeddata.UnknownEntityType(entityType)
	}
	out := make([]string, len(s.bundles))
	copy(out, s.bundles)
	return out, nil
}

// FieldDefinitions returns the fields of an entity of the given type and
// bundle: base fields first, then bundle fields. An empty bundle selects
// base fields only.
func (r *Registry) FieldDefinitions(entityType, bundle string) ([]typeddata.FieldDefinition, error) {
	s, ok := r.entityTypes[entityType]
	if !ok {
		return nil, typeddata.UnknownEntityType(entityType)
	}
	defs := make([]typeddata.FieldDefinition, 0, len(s.base)+len(s.fields[bundle]))
	defs = append(defs, s.base...)
	if bundle == "" {
		return defs, nil
	}
	fields, ok := s.fields[bundle]
	if !ok && !slices.Contains(s.bundles, bundle) {
		return nil, fmt.Errorf("%w: %s has no bundle %q", typeddata.ErrUnknownEntityType, entityType, bundle)
	}
	return append(defs, fields...), nil
}

// Entities returns the sample entities of the catalogue.
func (r *Registry) Entities() []typeddata.EntityRecord {
	out := make([]typeddata.EntityRecord, len(r.catalogue.Entities))
	for i, rec := range r.catalogue.Entities {
		rec.Values = rec.Values.Clone()
		out[i] = rec
	}
	return out
}
