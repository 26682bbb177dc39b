package typeddata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinitions() []FieldDefinition {
	text := NewItemDefinition("field_item:string",
		PropertyDefinition{Name: "value", DataType: "string"},
	)
	ref := NewItemDefinition("field_item:entity_reference",
		PropertyDefinition{Name: "target_id", DataType: "integer"},
		PropertyDefinition{Name: "entity", DataType: "entity_reference"},
	)
	return []FieldDefinition{
		NewBaseFieldDefinition("node", FieldSpec{Name: "title", Label: "Title", Type: "string", Item: text}),
		NewFieldConfig("node", "article", FieldSpec{Name: "field_tags", Label: "Tags", Type: "entity_reference", Item: ref}),
	}
}

func TestNewContentEntity(t *testing.T) {
	record := EntityRecord{
		Type:   "node",
		ID:     "2",
		Bundle: "article",
		Values: MapOf(
			"title", []any{MapOf("value", "Hello")},
			"field_tags", []any{MapOf("target_id", "7"), MapOf("target_id", "9")},
			"unknown", []any{"ignored"},
		),
	}
	entity := NewContentEntity(record, testDefinitions())

	assert.Equal(t, "node", entity.EntityTypeID())
	assert.Equal(t, "2", entity.ID())
	assert.Equal(t, "article", entity.Bundle())
	require.Len(t, entity.FieldDefinitions(), 2)

	title, err := entity.Get("title")
	require.NoError(t, err)
	assert.IsType(t, &ItemList{}, title)
	assert.Equal(t, "Hello", title.Property("value"))

	tags, err := entity.Get("field_tags")
	require.NoError(t, err)
	assert.IsType(t, &EntityReferenceItemList{}, tags)
	assert.Equal(t, "7", tags.Property("target_id"))
	assert.Nil(t, tags.Property("entity"))
}

func TestContentEntity_UnknownField(t *testing.T) {
	entity := NewContentEntity(EntityRecord{Type: "node", ID: "1"}, testDefinitions())

	_, ok := entity.FieldDefinition("body")
	assert.False(t, ok)

	_, err := entity.Get("body")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestContentEntity_EmptyFieldHasNoValue(t *testing.T) {
	entity := NewContentEntity(EntityRecord{Type: "node", ID: "1"}, testDefinitions())

	title, err := entity.Get("title")
	require.NoError(t, err)
	assert.Empty(t, title.Items())
	assert.Nil(t, title.Property("value"))
}

func TestFieldDefinitions(t *testing.T) {
	defs := testDefinitions()

	base := defs[0]
	assert.True(t, base.IsBaseField())
	assert.Equal(t, "node", base.TargetEntityTypeID())
	assert.Empty(t, base.TargetBundle())
	assert.Equal(t, DataTypeList, base.DataType())
	assert.NotNil(t, base.Constraints())

	config := defs[1]
	assert.False(t, config.IsBaseField())
	assert.Equal(t, "article", config.TargetBundle())

	names := []string{}
	for _, p := range config.ItemDefinition().PropertyDefinitions() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"target_id", "entity"}, names)
}
