// Package plugins holds the Go types backing the built-in typed-data plugins,
// their definition classes and the validation constraint plugins. Catalogue
// documents refer to them by fully-qualified name.
package plugins

import "time"

// StringData is the "string" data type.
type StringData struct{ Value string }

// PluginID returns the data type id.
func (StringData) PluginID() string { return "string" }

// IntegerData is the "integer" data type.
type IntegerData struct{ Value int64 }

// PluginID returns the data type id.
func (IntegerData) PluginID() string { return "integer" }

// FloatData is the "float" data type.
type FloatData struct{ Value float64 }

// PluginID returns the data type id.
func (FloatData) PluginID() string { return "float" }

// BooleanData is the "boolean" data type.
type BooleanData struct{ Value bool }

// PluginID returns the data type id.
func (BooleanData) PluginID() string { return "boolean" }

// TimestampData is the "timestamp" data type.
type TimestampData struct{ Value time.Time }

// PluginID returns the data type id.
func (TimestampData) PluginID() string { return "timestamp" }

// URIData is the "uri" data type.
type URIData struct{ Value string }

// PluginID returns the data type id.
func (URIData) PluginID() string { return "uri" }

// EmailData is the "email" data type.
type EmailData struct{ Value string }

// PluginID returns the data type id.
func (EmailData) PluginID() string { return "email" }

// LanguageReference is the "language_reference" data type.
type LanguageReference struct{ LangCode string }

// PluginID returns the data type id.
func (LanguageReference) PluginID() string { return "language_reference" }

// EntityReference is the "entity_reference" data type.
type EntityReference struct {
	TargetType string
	TargetID   string
}

// PluginID returns the data type id.
func (EntityReference) PluginID() string { return "entity_reference" }

// MapData is the "map" data type.
type MapData struct{ Values map[string]any }

// PluginID returns the data type id.
func (MapData) PluginID() string { return "map" }

// ListData is the "list" data type.
type ListData struct{ Items []any }

// PluginID returns the data type id.
func (ListData) PluginID() string { return "list" }

// FieldItem is the "field_item" data type every field item derives from.
type FieldItem struct{ Properties map[string]any }

// PluginID returns the data type id.
func (FieldItem) PluginID() string { return "field_item" }

// EntityAdapter is the "entity" data type wrapping a whole entity.
type EntityAdapter struct{ EntityType string }

// PluginID returns the data type id.
func (EntityAdapter) PluginID() string { return "entity" }
