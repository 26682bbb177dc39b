package metadata

import "github.com/conduit-lang/tdexplorer/pkg/typeddata"

// Catalogue is the decoded catalogue document. Every section keeps the
// declaration order of the source file.
type Catalogue struct {
	Types       []typeddata.TypeDefinition       // Typed data plugin definitions
	Constraints []typeddata.ConstraintDefinition // Validation constraint plugins
	FieldTypes  []FieldTypeMetadata              // Item shape per field type
	EntityTypes []EntityTypeMetadata             // Fieldable entity types
	Entities    []typeddata.EntityRecord         // Sample entities for the memory store
}

// FieldTypeMetadata describes the items of one field type.
type FieldTypeMetadata struct {
	Type         string                         // Field type (e.g. "string", "entity_reference")
	ListClass    string                         // Class of the field's item list
	ItemDataType string                         // Type registry key of a single item
	Properties   []typeddata.PropertyDefinition // Item properties in declaration order
}

// EntityTypeMetadata describes a fieldable entity type.
type EntityTypeMetadata struct {
	ID         string
	Label      string
	BaseFields []FieldMetadata // Shared by every bundle
	Bundles    []BundleMetadata
}

// BundleMetadata describes one bundle of an entity type.
type BundleMetadata struct {
	Name   string
	Label  string
	Fields []FieldMetadata // Attached only to this bundle
}

// FieldMetadata is the declared form of one field.
type FieldMetadata struct {
	Name        string
	Label       string
	Type        string // Field type, a key into field_types
	Description string
	Class       string         // Overrides the field type's list class
	Constraints *typeddata.Map // Constraint id -> options
}
