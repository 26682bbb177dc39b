package plugins

// DataDefinition describes a primitive data value.
type DataDefinition struct {
	DataType string
	Label    string
	ReadOnly bool
}

// Kind returns the definition kind.
func (DataDefinition) Kind() string { return "data" }

// ListDataDefinition describes a list of items of one data type.
type ListDataDefinition struct {
	ItemType string
}

// Kind returns the definition kind.
func (ListDataDefinition) Kind() string { return "list" }

// MapDataDefinition describes a map of named properties.
type MapDataDefinition struct {
	MainProperty string
}

// Kind returns the definition kind.
func (MapDataDefinition) Kind() string { return "map" }

// DataReferenceDefinition describes a reference to other typed data.
type DataReferenceDefinition struct {
	TargetType string
}

// Kind returns the definition kind.
func (DataReferenceDefinition) Kind() string { return "reference" }

// FieldItemDataDefinition describes one item of a field.
type FieldItemDataDefinition struct {
	FieldType string
}

// Kind returns the definition kind.
func (FieldItemDataDefinition) Kind() string { return "field_item" }

// EntityDataDefinition describes a whole entity.
type EntityDataDefinition struct {
	EntityType string
	Bundles    []string
}

// Kind returns the definition kind.
func (EntityDataDefinition) Kind() string { return "entity" }
