package typeddata

import "reflect"

// Class names of the default field containers.
var (
	ItemListClass                = ClassName(&ItemList{})
	EntityReferenceItemListClass = ClassName(&EntityReferenceItemList{})
)

// Classes returns zero values of the model types that definitions may name
// as classes (field definitions, item lists, entities).
func Classes() []any {
	return []any{
		&BaseFieldDefinition{},
		&FieldConfig{},
		&ItemList{},
		&EntityReferenceItemList{},
		&ContentEntity{},
		&FieldItem{},
	}
}

// ClassName returns the fully-qualified name of v's type, dereferencing
// pointers. Catalogues use this form to name classes.
func ClassName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// DefaultListClass is the container class of a field type when the
// catalogue does not name one.
func DefaultListClass(fieldType string) string {
	if fieldType == FieldTypeEntityReference {
		return EntityReferenceItemListClass
	}
	return ItemListClass
}
