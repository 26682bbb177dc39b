package typeddata

import "context"

// FieldTypeEntityReference is the field type whose items point at other entities.
const FieldTypeEntityReference = "entity_reference"

// FieldItem holds the property values of one field item.
type FieldItem struct {
	values *Map
}

// NewFieldItem creates an item from its property values.
func NewFieldItem(values *Map) *FieldItem {
	if values == nil {
		values = NewMap()
	}
	return &FieldItem{values: values.Clone()}
}

// Get returns a property value, nil when unset.
func (i *FieldItem) Get(property string) any {
	v, _ := i.values.Get(property)
	return v
}

// Values returns a copy of the item's property values.
func (i *FieldItem) Values() *Map { return i.values.Clone() }

// FieldItemList is the live typed-data container of one entity field.
type FieldItemList interface {
	Name() string
	Definition() FieldDefinition
	Items() []*FieldItem
	// Property reads a property of the first item, nil when the list is empty.
	Property(name string) any
}

// ItemList is the default FieldItemList.
type ItemList struct {
	name       string
	definition FieldDefinition
	items      []*FieldItem
}

// NewFieldItemList creates the container matching the definition's field type.
func NewFieldItemList(definition FieldDefinition, items []*FieldItem) FieldItemList {
	list := ItemList{name: definition.Name(), definition: definition, items: items}
	if definition.Type() == FieldTypeEntityReference {
		return &EntityReferenceItemList{ItemList: list}
	}
	return &list
}

// Name returns the field name.
func (l *ItemList) Name() string { return l.name }

// Definition returns the field definition.
func (l *ItemList) Definition() FieldDefinition { return l.definition }

// Items returns the items in order.
func (l *ItemList) Items() []*FieldItem {
	items := make([]*FieldItem, len(l.items))
	copy(items, l.items)
	return items
}

// Property reads a property of the first item.
func (l *ItemList) Property(name string) any {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[0].Get(name)
}

// EntityReferenceItemList holds references to other entities.
type EntityReferenceItemList struct {
	ItemList
}

// Entity is a loaded, fieldable entity.
type Entity interface {
	EntityTypeID() string
	ID() string
	Bundle() string
	// FieldDefinitions returns base fields first, then bundle fields, each in
	// declaration order.
	FieldDefinitions() []FieldDefinition
	FieldDefinition(name string) (FieldDefinition, bool)
	// Get returns the live container of a field or ErrUnknownField.
	Get(name string) (FieldItemList, error)
}

// EntityStore loads entities.
type EntityStore interface {
	// Load fails with ErrUnknownEntityType or ErrEntityNotFound.
	Load(ctx context.Context, entityType, id string) (Entity, error)
}

// EntityRecord is the stored form of an entity: raw item values per field.
type EntityRecord struct {
	Type   string
	ID     string
	Bundle string
	Values *Map // field name -> []any of *Map items
}

// ContentEntity is the Entity implementation built from a record and its schema.
type ContentEntity struct {
	entityType  string
	id          string
	bundle      string
	definitions []FieldDefinition
	fields      map[string]FieldItemList
}

// NewContentEntity binds stored values to field definitions. Values for
// fields without a definition are ignored; fields without values get an
// empty list.
func NewContentEntity(record EntityRecord, definitions []FieldDefinition) *ContentEntity {
	e := &ContentEntity{
		entityType:  record.Type,
		id:          record.ID,
		bundle:      record.Bundle,
		definitions: definitions,
		fields:      make(map[string]FieldItemList, len(definitions)),
	}
	for _, def := range definitions {
		e.fields[def.Name()] = NewFieldItemList(def, itemsOf(record.Values.List(def.Name())))
	}
	return e
}

func itemsOf(raw []any) []*FieldItem {
	items := make([]*FieldItem, 0, len(raw))
	for _, r := range raw {
		switch v := r.(type) {
		case *Map:
			items = append(items, NewFieldItem(v))
		default:
			items = append(items, NewFieldItem(MapOf("value", v)))
		}
	}
	return items
}

// EntityTypeID returns the entity type.
func (e *ContentEntity) EntityTypeID() string { return e.entityType }

// ID returns the entity id.
func (e *ContentEntity) ID() string { return e.id }

// Bundle returns the entity bundle.
func (e *ContentEntity) Bundle() string { return e.bundle }

// FieldDefinitions returns every field definition in order.
func (e *ContentEntity) FieldDefinitions() []FieldDefinition {
	defs := make([]FieldDefinition, len(e.definitions))
	copy(defs, e.definitions)
	return defs
}

// FieldDefinition returns a field definition by name.
func (e *ContentEntity) FieldDefinition(name string) (FieldDefinition, bool) {
	for _, def := range e.definitions {
		if def.Name() == name {
			return def, true
		}
	}
	return nil, false
}

// Get returns the field's live container.
func (e *ContentEntity) Get(name string) (FieldItemList, error) {
	list, ok := e.fields[name]
	if !ok {
		return nil, UnknownField(e.entityType, name)
	}
	return list, nil
}
