package typeddata

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMap_SetKeepsFirstPosition(t *testing.T) {
	m := MapOf("b", 1, "a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestMap_UnmarshalYAMLPreservesOrder(t *testing.T) {
	src := `
zeta: 1
alpha:
  nested_b: true
  nested_a: [x, y]
mid: text
`
	var m Map
	require.NoError(t, yaml.Unmarshal([]byte(src), &m))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	nested := m.Map("alpha")
	require.NotNil(t, nested)
	assert.Equal(t, []string{"nested_b", "nested_a"}, nested.Keys())
	assert.Equal(t, []any{"x", "y"}, nested.List("nested_a"))
	assert.Equal(t, "text", m.String("mid"))
}

func TestMap_UnmarshalYAMLRejectsSequence(t *testing.T) {
	var m Map
	err := yaml.Unmarshal([]byte("- a\n- b\n"), &m)
	assert.Error(t, err)
}

func TestMap_JSONRoundTripPreservesOrder(t *testing.T) {
	src := `{"z":1,"a":{"y":2.5,"b":[1,"two",null]},"m":false}`

	var m Map
	require.NoError(t, json.Unmarshal([]byte(src), &m))
	assert.Equal(t, []string{"z", "a", "m"}, m.Keys())

	z, _ := m.Get("z")
	assert.Equal(t, int64(1), z)
	y, _ := m.Map("a").Get("y")
	assert.Equal(t, 2.5, y)

	out, err := json.Marshal(&m)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestMap_CloneIsDeep(t *testing.T) {
	original := MapOf("nested", MapOf("k", "v"), "list", []any{"a"})
	clone := original.Clone()

	clone.Map("nested").Set("k", "changed")
	clone.List("list")[0] = "changed"

	assert.Equal(t, "v", original.Map("nested").String("k"))
	assert.Equal(t, "a", original.List("list")[0])
}

func TestMap_NilReceiver(t *testing.T) {
	var m *Map
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.Nil(t, m.Clone())
	_, ok := m.Get("x")
	assert.False(t, ok)
}

func TestMap_UnmarshalYAMLAliases(t *testing.T) {
	doc := "base: &b\n  class: a.B\nfirst: *b\nsecond: *b\n"
	m := NewMap()
	require.NoError(t, yaml.Unmarshal([]byte(doc), m))

	assert.Equal(t, []string{"base", "first", "second"}, m.Keys())
	assert.Equal(t, "a.B", m.Map("second").String("class"))
}

func TestMap_UnmarshalYAMLRejectsSelfReference(t *testing.T) {
	doc := "string: &x\n  class: a.B\n  self: *x\n"
	err := yaml.Unmarshal([]byte(doc), NewMap())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains itself")
}

func TestMap_UnmarshalYAMLCapsAliasExpansion(t *testing.T) {
	doc := "a: &a [x, x, x, x, x, x, x, x, x, x]\n"
	prev := "a"
	for _, name := range []string{"b", "c", "d", "e", "f"} {
		doc += name + ": &" + name + " [" + strings.Repeat("*"+prev+", ", 9) + "*" + prev + "]\n"
		prev = name
	}
	err := yaml.Unmarshal([]byte(doc), NewMap())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aliases")
}
