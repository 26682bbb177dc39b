package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// ErrInvalidCatalogue is returned for documents that do not follow the
// catalogue format.
var ErrInvalidCatalogue = errors.New("invalid catalogue")

// Format is the encoding of a catalogue document.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension; anything but .json is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ReadFile reads and decodes a catalogue file.
func ReadFile(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}
	cat, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a catalogue document.
func Parse(data []byte, format Format) (*Catalogue, error) {
	doc := typeddata.NewMap()
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	default:
		return nil, fmt.Errorf("unsupported catalogue format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal: %w", ErrInvalidCatalogue, err)
	}
	return decode(doc)
}

func decode(doc *typeddata.Map) (*Catalogue, error) {
	cat := &Catalogue{}
	d := decoder{}

	for _, key := range d.keys(doc, "types") {
		fields := d.mapping(doc.Map("types"), key, "types")
		cat.Types = append(cat.Types, typeddata.NewTypeDefinition(key, fields))
	}
	for _, key := range d.keys(doc, "constraints") {
		cat.Constraints = append(cat.Constraints, d.constraint(doc.Map("constraints"), key))
	}
	for _, key := range d.keys(doc, "field_types") {
		cat.FieldTypes = append(cat.FieldTypes, d.fieldType(doc.Map("field_types"), key))
	}
	for _, key := range d.keys(doc, "entity_types") {
		cat.EntityTypes = append(cat.EntityTypes, d.entityType(doc.Map("entity_types"), key))
	}
	for i, raw := range d.list(doc, "entities") {
		cat.Entities = append(cat.Entities, d.entity(raw, i))
	}

	if len(d.errs) > 0 {
		return nil, errors.Join(d.errs...)
	}
	return cat, nil
}

// decoder collects every problem of a document instead of stopping at the first.
type decoder struct {
	errs []error
}

func (d *decoder) fail(format string, args ...any) {
	d.errs = append(d.errs, fmt.Errorf("%w: %s", ErrInvalidCatalogue, fmt.Sprintf(format, args...)))
}

func (d *decoder) keys(doc *typeddata.Map, section string) []string {
	v, ok := doc.Get(section)
	if !ok || v == nil {
		return nil
	}
	m, ok := v.(*typeddata.Map)
	if !ok {
		d.fail("%s must be a mapping, got %T", section, v)
		return nil
	}
	return m.Keys()
}

func (d *decoder) list(doc *typeddata.Map, section string) []any {
	v, ok := doc.Get(section)
	if !ok || v == nil {
		return nil
	}
	l, ok := v.([]any)
	if !ok {
		d.fail("%s must be a sequence, got %T", section, v)
		return nil
	}
	return l
}

func (d *decoder) mapping(parent *typeddata.Map, key, where string) *typeddata.Map {
	v, _ := parent.Get(key)
	if v == nil {
		return typeddata.NewMap()
	}
	m, ok := v.(*typeddata.Map)
	if !ok {
		d.fail("%s.%s must be a mapping, got %T", where, key, v)
		return typeddata.NewMap()
	}
	return m
}

func (d *decoder) constraint(section *typeddata.Map, key string) typeddata.ConstraintDefinition {
	m := d.mapping(section, key, "constraints")
	c := typeddata.ConstraintDefinition{
		ID:       key,
		Label:    scalar(m, "label"),
		Class:    scalar(m, "class"),
		Provider: scalar(m, "provider"),
	}
	if _, ok := m.Get("id"); ok {
		c.ID = scalar(m, "id")
	}
	if c.Label == "" {
		c.Label = key
	}
	return c
}

func (d *decoder) fieldType(section *typeddata.Map, key string) FieldTypeMetadata {
	m := d.mapping(section, key, "field_types")
	ft := FieldTypeMetadata{
		Type:         key,
		ListClass:    scalar(m, "list_class"),
		ItemDataType: scalar(m, "item_data_type"),
	}
	if ft.ItemDataType == "" {
		ft.ItemDataType = "field_item:" + key
	}
	props := d.mapping(m, "properties", "field_types."+key)
	for _, name := range props.Keys() {
		ft.Properties = append(ft.Properties, typeddata.PropertyDefinition{Name: name, DataType: scalar(props, name)})
	}
	return ft
}

func (d *decoder) entityType(section *typeddata.Map, key string) EntityTypeMetadata {
	m := d.mapping(section, key, "entity_types")
	et := EntityTypeMetadata{
		ID:         key,
		Label:      scalar(m, "label"),
		BaseFields: d.fields(m.List("base_fields"), key),
	}
	bundles := d.mapping(m, "bundles", "entity_types."+key)
	for _, name := range bundles.Keys() {
		b := d.mapping(bundles, name, "entity_types."+key+".bundles")
		et.Bundles = append(et.Bundles, BundleMetadata{
			Name:   name,
			Label:  scalar(b, "label"),
			Fields: d.fields(b.List("fields"), key+"."+name),
		})
	}
	return et
}

func (d *decoder) fields(raw []any, where string) []FieldMetadata {
	fields := make([]FieldMetadata, 0, len(raw))
	for i, r := range raw {
		m, ok := r.(*typeddata.Map)
		if !ok {
			d.fail("%s field %d must be a mapping, got %T", where, i, r)
			continue
		}
		f := FieldMetadata{
			Name:        scalar(m, "name"),
			Label:       scalar(m, "label"),
			Type:        scalar(m, "type"),
			Description: scalar(m, "description"),
			Class:       scalar(m, "class"),
			Constraints: m.Map("constraints"),
		}
		if f.Name == "" || f.Type == "" {
			d.fail("%s field %d needs a name and a type", where, i)
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func (d *decoder) entity(raw any, i int) typeddata.EntityRecord {
	m, ok := raw.(*typeddata.Map)
	if !ok {
		d.fail("entities[%d] must be a mapping, got %T", i, raw)
		return typeddata.EntityRecord{}
	}
	values := typeddata.NewMap()
	fieldValues := d.mapping(m, "values", fmt.Sprintf("entities[%d]", i))
	for _, field := range fieldValues.Keys() {
		v, _ := fieldValues.Get(field)
		if list, ok := v.([]any); ok {
			values.Set(field, list)
		} else {
			// A bare value is a single-item field.
			values.Set(field, []any{v})
		}
	}
	return typeddata.EntityRecord{
		Type:   scalar(m, "type"),
		ID:     scalar(m, "id"),
		Bundle: scalar(m, "bundle"),
		Values: values,
	}
}

// scalar reads a scalar as text; numeric ids such as `id: 2` are common.
func scalar(m *typeddata.Map, key string) string {
	v, ok := m.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
