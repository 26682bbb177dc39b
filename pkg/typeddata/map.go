package typeddata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Map is an ordered mapping of metadata keys to values. Iteration follows the
// order in which keys were first set, which for decoded documents is the
// declaration order of the source file.
//
// Values are scalars, strings naming classes, []any sequences or nested *Map.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// MapOf builds a Map from alternating key/value arguments.
// It panics when a key is not a string or a value is missing.
func MapOf(pairs ...any) *Map {
	if len(pairs)%2 != 0 {
		panic("typeddata.MapOf: odd number of arguments")
	}
	m := NewMap()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("typeddata.MapOf: key %v is %T, not string", pairs[i], pairs[i]))
		}
		m.Set(key, pairs[i+1])
	}
	return m
}

// Set stores a value. Overwriting a key keeps its original position.
func (m *Map) Set(key string, value any) *Map {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// String returns the value under key when it is a string, "" otherwise.
func (m *Map) String(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

// Map returns the nested Map under key, or nil.
func (m *Map) Map(key string) *Map {
	v, _ := m.Get(key)
	nested, _ := v.(*Map)
	return nested
}

// List returns the sequence under key, or nil.
func (m *Map) List(key string) []any {
	v, _ := m.Get(key)
	list, _ := v.([]any)
	return list
}

// Keys returns the keys in declaration order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy. Nested Maps and sequences are copied, other
// values are shared.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]any, len(m.values)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case *Map:
		return x.Clone()
	case []any:
		list := make([]any, len(x))
		for i, item := range x {
			list[i] = cloneValue(item)
		}
		return list
	default:
		return v
	}
}

// maxYAMLAliasExpansions caps the nodes reached through aliases in one
// document.
const maxYAMLAliasExpansions = 10000

// UnmarshalYAML decodes a YAML mapping keeping key order. Nested mappings
// become *Map and sequences become []any. An alias that refers back into
// its own anchor is an error.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	d := &yamlDecoder{expanding: make(map[*yaml.Node]bool)}
	return d.mapping(m, node)
}

// yamlDecoder walks a node tree, tracking the anchors being expanded.
type yamlDecoder struct {
	expanding map[*yaml.Node]bool
	expanded  int
}

func (d *yamlDecoder) enter(alias *yaml.Node) error {
	if d.expanding[alias] {
		return fmt.Errorf("line %d: anchor %q contains itself", alias.Line, alias.Anchor)
	}
	d.expanded++
	if d.expanded > maxYAMLAliasExpansions {
		return fmt.Errorf("line %d: document expands more than %d aliases", alias.Line, maxYAMLAliasExpansions)
	}
	d.expanding[alias] = true
	return nil
}

func (d *yamlDecoder) mapping(m *Map, node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return d.mapping(m, node.Content[0])
	}
	if node.Kind == yaml.AliasNode {
		if err := d.enter(node.Alias); err != nil {
			return err
		}
		defer delete(d.expanding, node.Alias)
		return d.mapping(m, node.Alias)
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, yamlKind(node))
	}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("line %d: invalid key: %w", node.Content[i].Line, err)
		}
		value, err := d.value(node.Content[i+1])
		if err != nil {
			return err
		}
		m.Set(key, value)
	}
	return nil
}

func (d *yamlDecoder) value(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if err := d.enter(node.Alias); err != nil {
			return nil, err
		}
		defer delete(d.expanding, node.Alias)
		return d.value(node.Alias)
	case yaml.MappingNode:
		nested := NewMap()
		if err := d.mapping(nested, node); err != nil {
			return nil, err
		}
		return nested, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := d.value(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	}
}

func yamlKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "node"
	}
}

// MarshalYAML encodes the Map as a mapping in declaration order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.keys {
		var key, value yaml.Node
		if err := key.Encode(k); err != nil {
			return nil, err
		}
		if err := value.Encode(m.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

// UnmarshalJSON decodes a JSON object keeping key order. Numbers decode to
// int64 when integral and float64 otherwise.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object, got %v", tok)
	}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	return m.decodeJSONObject(dec)
}

func (m *Map) decodeJSONObject(dec *json.Decoder) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeJSONValue(dec)
		if err != nil {
			return err
		}
		m.Set(key, value)
	}
	_, err := dec.Token()
	return err
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			nested := NewMap()
			if err := nested.decodeJSONObject(dec); err != nil {
				return nil, err
			}
			return nested, nil
		case '[':
			list := make([]any, 0)
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		return t, nil
	}
}

// MarshalJSON encodes the Map as a JSON object in declaration order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
