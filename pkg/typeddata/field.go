package typeddata

// DataTypeList is the data type of every field definition: a field holds a
// list of items.
const DataTypeList = "list"

// FieldDefinition is the schema of one entity field.
type FieldDefinition interface {
	Name() string
	Label() string
	// Type is the declared field type (string, integer, entity_reference, ...).
	Type() string
	Description() string
	// DataType is the typed-data plugin of the field itself.
	DataType() string
	// Class is the class backing the field's item list.
	Class() string
	// TargetEntityTypeID is the entity type the field is attached to.
	TargetEntityTypeID() string
	// TargetBundle is the bundle the field is attached to, empty for base fields.
	TargetBundle() string
	Constraints() *Map
	// ItemDefinition describes a single item; nil when the field has none.
	ItemDefinition() *ItemDefinition
	IsBaseField() bool
}

// FieldSpec carries the declared attributes shared by every field definition.
type FieldSpec struct {
	Name        string
	Label       string
	Type        string
	Description string
	Class       string
	Constraints *Map
	Item        *ItemDefinition
}

type fieldDefinition struct {
	spec       FieldSpec
	entityType string
}

func newFieldDefinition(entityType string, spec FieldSpec) fieldDefinition {
	spec.Constraints = spec.Constraints.Clone()
	if spec.Constraints == nil {
		spec.Constraints = NewMap()
	}
	return fieldDefinition{spec: spec, entityType: entityType}
}

func (f *fieldDefinition) Name() string                    { return f.spec.Name }
func (f *fieldDefinition) Label() string                   { return f.spec.Label }
func (f *fieldDefinition) Type() string                    { return f.spec.Type }
func (f *fieldDefinition) Description() string             { return f.spec.Description }
func (f *fieldDefinition) DataType() string                { return DataTypeList }
func (f *fieldDefinition) Class() string                   { return f.spec.Class }
func (f *fieldDefinition) TargetEntityTypeID() string      { return f.entityType }
func (f *fieldDefinition) Constraints() *Map               { return f.spec.Constraints.Clone() }
func (f *fieldDefinition) ItemDefinition() *ItemDefinition { return f.spec.Item }

// BaseFieldDefinition is a field every bundle of an entity type shares.
type BaseFieldDefinition struct {
	fieldDefinition
}

// NewBaseFieldDefinition creates a base field of entityType.
func NewBaseFieldDefinition(entityType string, spec FieldSpec) *BaseFieldDefinition {
	return &BaseFieldDefinition{fieldDefinition: newFieldDefinition(entityType, spec)}
}

// TargetBundle is always empty for base fields.
func (d *BaseFieldDefinition) TargetBundle() string { return "" }

// IsBaseField reports true.
func (d *BaseFieldDefinition) IsBaseField() bool { return true }

// FieldConfig is a configurable field attached to one bundle.
type FieldConfig struct {
	fieldDefinition
	bundle string
}

// NewFieldConfig creates a field of entityType attached to bundle.
func NewFieldConfig(entityType, bundle string, spec FieldSpec) *FieldConfig {
	return &FieldConfig{fieldDefinition: newFieldDefinition(entityType, spec), bundle: bundle}
}

// TargetBundle returns the bundle the field belongs to.
func (c *FieldConfig) TargetBundle() string { return c.bundle }

// IsBaseField reports false.
func (c *FieldConfig) IsBaseField() bool { return false }

// ItemDefinition describes the property shape of a single field item.
type ItemDefinition struct {
	dataType   string
	properties []PropertyDefinition
}

// NewItemDefinition creates an item definition; properties keep the given order.
func NewItemDefinition(dataType string, properties ...PropertyDefinition) *ItemDefinition {
	props := make([]PropertyDefinition, len(properties))
	copy(props, properties)
	return &ItemDefinition{dataType: dataType, properties: props}
}

// DataType returns the item's typed-data plugin id.
func (d *ItemDefinition) DataType() string { return d.dataType }

// PropertyDefinitions returns the properties in declaration order.
func (d *ItemDefinition) PropertyDefinitions() []PropertyDefinition {
	props := make([]PropertyDefinition, len(d.properties))
	copy(props, d.properties)
	return props
}

// PropertyDefinition is one named property of a field item. DataType is a
// key into the type registry.
type PropertyDefinition struct {
	Name     string
	DataType string
}
