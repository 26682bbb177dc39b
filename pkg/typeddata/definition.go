package typeddata

// Well-known keys of a type definition.
const (
	KeyID              = "id"
	KeyClass           = "class"
	KeyDefinitionClass = "definition_class"
)

// TypeDefinition is a typed-data plugin definition: an identifier plus an
// open set of metadata fields. Besides class and definition_class, plugins
// may carry labels, constraints, list classes, provider and anything else.
type TypeDefinition struct {
	id     string
	fields *Map
}

// NewTypeDefinition creates a definition for key. The fields are copied and
// an "id" field is prepended when absent.
func NewTypeDefinition(key string, fields *Map) TypeDefinition {
	out := NewMap()
	if _, ok := fields.Get(KeyID); !ok {
		out.Set(KeyID, key)
	}
	for _, k := range fields.Keys() {
		v, _ := fields.Get(k)
		out.Set(k, cloneValue(v))
	}
	return TypeDefinition{id: key, fields: out}
}

// ID returns the registry key.
func (d TypeDefinition) ID() string { return d.id }

// Class returns the implementing class reference.
func (d TypeDefinition) Class() string { return d.fields.String(KeyClass) }

// DefinitionClass returns the metadata (definition) class reference.
func (d TypeDefinition) DefinitionClass() string { return d.fields.String(KeyDefinitionClass) }

// Fields returns a copy of every metadata field in declaration order.
func (d TypeDefinition) Fields() *Map { return d.fields.Clone() }

// Get returns a single metadata field.
func (d TypeDefinition) Get(key string) (any, bool) { return d.fields.Get(key) }

// Clone returns an independent copy of the definition.
func (d TypeDefinition) Clone() TypeDefinition {
	return TypeDefinition{id: d.id, fields: d.fields.Clone()}
}

// ConstraintDefinition describes a validation constraint plugin.
// ID and Provider are optional.
type ConstraintDefinition struct {
	ID       string `json:"id,omitempty"`
	Label    string `json:"label"`
	Class    string `json:"class"`
	Provider string `json:"provider,omitempty"`
}

// TypeRegistry lists and fetches typed-data plugin definitions.
type TypeRegistry interface {
	// Definitions returns every definition in the registry's stable order.
	Definitions() []TypeDefinition
	// Definition returns the definition for key or ErrUnknownTypeKey.
	Definition(key string) (TypeDefinition, error)
}

// ConstraintRegistry lists validation constraint definitions.
type ConstraintRegistry interface {
	Constraints() []ConstraintDefinition
}
