package explorer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/tdexplorer/internal/explorer/classlink"
	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
	"github.com/conduit-lang/tdexplorer/pkg/typeddata/plugins"
)

const pluginsPkg = "github.com/conduit-lang/tdexplorer/pkg/typeddata/plugins."

type fakeTypes struct {
	defs []typeddata.TypeDefinition
}

func (f *fakeTypes) add(key string, fields ...any) {
	f.defs = append(f.defs, typeddata.NewTypeDefinition(key, typeddata.MapOf(fields...)))
}

func (f *fakeTypes) Definitions() []typeddata.TypeDefinition { return f.defs }

func (f *fakeTypes) Definition(key string) (typeddata.TypeDefinition, error) {
	for _, d := range f.defs {
		if d.ID() == key {
			return d, nil
		}
	}
	return typeddata.TypeDefinition{}, typeddata.UnknownTypeKey(key)
}

type fakeConstraints []typeddata.ConstraintDefinition

func (f fakeConstraints) Constraints() []typeddata.ConstraintDefinition { return f }

type fakeStore struct {
	types    map[string]bool
	entities map[string]typeddata.Entity
}

func (s *fakeStore) Load(_ context.Context, entityType, id string) (typeddata.Entity, error) {
	if !s.types[entityType] {
		return nil, typeddata.UnknownEntityType(entityType)
	}
	e, ok := s.entities[entityType+"/"+id]
	if !ok {
		return nil, typeddata.EntityNotFound(entityType, id)
	}
	return e, nil
}

type pathLinker struct{}

func (pathLinker) TypeURL(key string) string { return "/types/" + key }

func (pathLinker) FieldURL(entityType, id, field string) string {
	return fmt.Sprintf("/entity/%s/%s/%s", entityType, id, field)
}

func newCatalog() *classlink.Catalog {
	catalog := classlink.NewCatalog()
	catalog.Register(plugins.All()...)
	catalog.Register(typeddata.Classes()...)
	return catalog
}

func node2() typeddata.Entity {
	title := typeddata.NewBaseFieldDefinition("node", typeddata.FieldSpec{
		Name:        "title",
		Label:       "Title",
		Type:        "string",
		Description: "The node title.",
		Class:       "github.com/conduit-lang/tdexplorer/pkg/typeddata.ItemList",
		Constraints: typeddata.MapOf("Length", typeddata.MapOf("max", 255)),
		Item:        typeddata.NewItemDefinition("field_item:string", typeddata.PropertyDefinition{Name: "value", DataType: "string"}),
	})
	body := typeddata.NewFieldConfig("node", "article", typeddata.FieldSpec{
		Name:  "body",
		Label: "Body",
		Type:  "text_with_summary",
		Class: "github.com/conduit-lang/tdexplorer/pkg/typeddata.ItemList",
		Item: typeddata.NewItemDefinition("field_item:text_with_summary",
			typeddata.PropertyDefinition{Name: "value", DataType: "string"},
			typeddata.PropertyDefinition{Name: "summary", DataType: "string"},
			typeddata.PropertyDefinition{Name: "format", DataType: "filter_format"},
		),
	})
	tags := typeddata.NewFieldConfig("node", "article", typeddata.FieldSpec{
		Name:  "tags",
		Label: "Tags",
		Type:  "entity_reference",
		Class: "github.com/conduit-lang/tdexplorer/pkg/typeddata.EntityReferenceItemList",
	})
	published := typeddata.NewBaseFieldDefinition("node", typeddata.FieldSpec{
		Name:  "status",
		Label: "Published",
		Type:  "boolean",
		Class: "github.com/conduit-lang/tdexplorer/pkg/typeddata.ItemList",
		Item:  typeddata.NewItemDefinition("field_item:boolean", typeddata.PropertyDefinition{Name: "value", DataType: "boolean"}),
	})

	record := typeddata.EntityRecord{
		Type:   "node",
		ID:     "2",
		Bundle: "article",
		Values: typeddata.MapOf(
			"title", []any{typeddata.MapOf("value", "Hello")},
			"status", []any{typeddata.MapOf("value", true)},
			"body", []any{typeddata.MapOf("value", "Body text", "summary", "Short", "format", "basic_html")},
		),
	}
	return typeddata.NewContentEntity(record, []typeddata.FieldDefinition{title, published, body, tags})
}

func newFixture() *Explorer {
	types := &fakeTypes{}
	types.add("string", "label", "String", "class", pluginsPkg+"StringData", "definition_class", pluginsPkg+"DataDefinition")
	types.add("boolean", "label", "Boolean", "class", pluginsPkg+"BooleanData", "definition_class", pluginsPkg+"DataDefinition")
	types.add("field_item:string", "label", "Text (plain)", "class", pluginsPkg+"FieldItem", "definition_class", pluginsPkg+"FieldItemDataDefinition")
	types.add("field_item:boolean", "label", "Boolean", "class", pluginsPkg+"FieldItem", "definition_class", pluginsPkg+"FieldItemDataDefinition")
	types.add("field_item:text_with_summary", "label", "Text (formatted, long, with summary)", "class", pluginsPkg+"FieldItem", "definition_class", pluginsPkg+"FieldItemDataDefinition")

	constraints := fakeConstraints{
		{ID: "Length", Label: "Length", Class: pluginsPkg + "LengthConstraint", Provider: "core"},
		{Label: "Legacy", Class: "legacy.Constraint"},
	}

	store := &fakeStore{
		types:    map[string]bool{"node": true, "user": true},
		entities: map[string]typeddata.Entity{"node/2": node2()},
	}

	resolver := classlink.NewResolver(newCatalog(), nil, classlink.DefaultLinkGenerator())
	return New(types, constraints, store, resolver, pathLinker{})
}

func texts(r report.Row) []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Text
	}
	return out
}

func TestTypes(t *testing.T) {
	types := &fakeTypes{}
	types.add("string", "class", pluginsPkg+"StringData", "definition_class", pluginsPkg+"DataDefinition")
	resolver := classlink.NewResolver(newCatalog(), nil, classlink.DefaultLinkGenerator())
	e := New(types, fakeConstraints{}, &fakeStore{}, resolver, pathLinker{})

	r, err := e.Types(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Id", "Class", "Definition class", "Action"}, r.Headers)
	require.Len(t, r.Rows, 1)
	row := r.Rows[0]
	assert.Equal(t, []string{"string", "plugins.StringData", "plugins.DataDefinition", "Explore"}, texts(row))

	assert.Equal(t, report.Text, row[0].Kind)
	assert.Equal(t, report.Link, row[1].Kind)
	assert.Equal(t, pluginsPkg+"StringData", row[1].Title)
	assert.True(t, strings.HasSuffix(row[1].URL, "plugins/data.go#L0"), row[1].URL)
	assert.True(t, strings.HasSuffix(row[2].URL, "plugins/definition.go#L0"), row[2].URL)
	assert.Equal(t, report.LinkCell("Explore", "/types/string"), row[3])
}

func TestTypes_UnloadableClass(t *testing.T) {
	types := &fakeTypes{}
	types.add("ghost", "class", "example.com/gone.Ghost", "definition_class", pluginsPkg+"DataDefinition")
	resolver := classlink.NewResolver(newCatalog(), nil, classlink.DefaultLinkGenerator())
	e := New(types, fakeConstraints{}, &fakeStore{}, resolver, pathLinker{})

	r, err := e.Types(context.Background())
	assert.Nil(t, r)
	assert.ErrorIs(t, err, typeddata.ErrUnresolvableType)
}

func TestTypes_RoundTrip(t *testing.T) {
	e := newFixture()
	for _, def := range e.types.Definitions() {
		got, err := e.types.Definition(def.ID())
		require.NoError(t, err)
		assert.Equal(t, def, got)
	}
}

func TestType(t *testing.T) {
	e := newFixture()

	r, err := e.Type(context.Background(), "string")
	require.NoError(t, err)

	assert.Equal(t, []report.Row{{report.TextCell("string")}}, r.Preamble)
	assert.Equal(t, []string{"Key", "Value"}, r.Headers)
	require.Len(t, r.Rows, 4)
	assert.Equal(t, []string{"id", "string"}, texts(r.Rows[0]))
	assert.Equal(t, []string{"label", "String"}, texts(r.Rows[1]))
	assert.Equal(t, []string{"class", "plugins.StringData"}, texts(r.Rows[2]))
	assert.Equal(t, report.Link, r.Rows[2][1].Kind)
	assert.Equal(t, []string{"definition_class", "plugins.DataDefinition"}, texts(r.Rows[3]))
}

func TestType_HeterogeneousMetadata(t *testing.T) {
	types := &fakeTypes{}
	types.add("entity:node",
		"class", pluginsPkg+"EntityAdapter",
		"internal", false,
		"constraints", typeddata.MapOf("EntityType", "node"),
		"list_class", pluginsPkg+"ListData",
		"weight", 3,
	)
	resolver := classlink.NewResolver(newCatalog(), nil, classlink.DefaultLinkGenerator())
	e := New(types, fakeConstraints{}, &fakeStore{}, resolver, pathLinker{})

	r, err := e.Type(context.Background(), "entity:node")
	require.NoError(t, err)

	require.Len(t, r.Rows, 6)
	assert.Equal(t, "False", r.Rows[2][1].Text)
	assert.Equal(t, report.Dump, r.Rows[3][1].Kind)
	assert.Contains(t, r.Rows[3][1].Text, "[EntityType] => node")
	assert.Equal(t, "plugins.ListData", r.Rows[4][1].Text)
	assert.Equal(t, report.TextCell("3"), r.Rows[5][1])
}

func TestType_UnknownKey(t *testing.T) {
	e := newFixture()

	_, err := e.Type(context.Background(), "nope")
	assert.ErrorIs(t, err, typeddata.ErrUnknownTypeKey)
}

func TestEntity(t *testing.T) {
	e := newFixture()

	r, err := e.Entity(context.Background(), "node", "2")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Label", "Name", "Type", "Description", "Data type",
		"Class", "Entity", "Bundle", "Constraints", "Action",
	}, r.Headers)
	require.Len(t, r.Rows, 4)

	title := r.Rows[0]
	assert.Equal(t, []string{"Title", "title", "string", "The node title.", "list", "typeddata.ItemList", "node", ""}, texts(title)[:8])
	assert.Equal(t, report.Dump, title[8].Kind)
	assert.Contains(t, title[8].Text, "[Length] => Map")
	assert.Contains(t, title[8].Text, "[max] => 255")
	assert.Equal(t, report.LinkCell("Explore", "/entity/node/2/title"), title[9])

	var names []string
	for _, row := range r.Rows {
		names = append(names, row[1].Text)
	}
	assert.Equal(t, []string{"title", "status", "body", "tags"}, names)
	assert.Equal(t, "article", r.Rows[2][7].Text)
	assert.Equal(t, "typeddata.EntityReferenceItemList", r.Rows[3][5].Text)
}

func TestEntity_LoadErrors(t *testing.T) {
	e := newFixture()

	_, err := e.Entity(context.Background(), "node", "999")
	assert.ErrorIs(t, err, typeddata.ErrEntityNotFound)

	_, err = e.Entity(context.Background(), "widget", "2")
	assert.ErrorIs(t, err, typeddata.ErrUnknownEntityType)

	_, err = e.Field(context.Background(), "node", "999", "title")
	assert.ErrorIs(t, err, typeddata.ErrEntityNotFound)
}

func TestField(t *testing.T) {
	e := newFixture()

	r, err := e.Field(context.Background(), "node", "2", "title")
	require.NoError(t, err)

	require.Len(t, r.Preamble, 3)
	assert.Equal(t, "The Data Definition of title is typeddata.BaseFieldDefinition.", r.Preamble[0].String())
	assert.Equal(t, "The Typed Data of title is typeddata.ItemList.", r.Preamble[1].String())
	assert.Equal(t, "The Typed Data plugin id is field_item:string.", r.Preamble[2].String())
	assert.Equal(t, report.LinkCell("field_item:string", "/types/field_item:string"), r.Preamble[2][1])

	assert.Equal(t, []string{"Property", "Type", "Value"}, r.Headers)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, report.Row{
		report.TextCell("value"),
		report.LinkCell("string", "/types/string"),
		report.TextCell("Hello"),
	}, r.Rows[0])
}

func TestField_PropertyOrderAndValues(t *testing.T) {
	e := newFixture()

	r, err := e.Field(context.Background(), "node", "2", "status")
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "True", r.Rows[0][2].Text)

	types := e.types.(*fakeTypes)
	types.add("filter_format", "class", pluginsPkg+"StringData")

	r, err = e.Field(context.Background(), "node", "2", "body")
	require.NoError(t, err)
	require.Len(t, r.Rows, 3)
	assert.Equal(t, []string{"value", "string", "Body text"}, texts(r.Rows[0]))
	assert.Equal(t, []string{"summary", "string", "Short"}, texts(r.Rows[1]))
	assert.Equal(t, []string{"format", "filter_format", "basic_html"}, texts(r.Rows[2]))
	assert.Equal(t, "The Data Definition of body is typeddata.FieldConfig.", r.Preamble[0].String())
}

func TestField_DanglingDataType(t *testing.T) {
	e := newFixture()

	r, err := e.Field(context.Background(), "node", "2", "body")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, typeddata.ErrUnknownTypeKey)
	assert.Contains(t, err.Error(), "filter_format")
}

func TestField_WithoutItemDefinition(t *testing.T) {
	e := newFixture()

	r, err := e.Field(context.Background(), "node", "2", "tags")
	require.NoError(t, err)
	require.Len(t, r.Preamble, 2)
	assert.Equal(t, "The Typed Data of tags is typeddata.EntityReferenceItemList.", r.Preamble[1].String())
	assert.Empty(t, r.Rows)
}

func TestField_UnknownField(t *testing.T) {
	e := newFixture()

	_, err := e.Field(context.Background(), "node", "2", "missing")
	assert.ErrorIs(t, err, typeddata.ErrUnknownField)
}

func TestConstraints(t *testing.T) {
	e := newFixture()

	r, err := e.Constraints(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Label", "Class", "Id", "Provider"}, r.Headers)
	require.Len(t, r.Rows, 2)
	assert.Equal(t, []string{"Length", "plugins.LengthConstraint", "Length", "core"}, texts(r.Rows[0]))
	assert.Equal(t, report.Link, r.Rows[0][1].Kind)

	assert.Equal(t, []string{"Legacy", "legacy.Constraint", "-", "-"}, texts(r.Rows[1]))
	assert.Equal(t, report.Text, r.Rows[1][1].Kind)
}

func TestCanceledContext(t *testing.T) {
	e := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Types(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = e.Constraints(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLabelsUniqueWithinReport(t *testing.T) {
	e := newFixture()

	r, err := e.Types(context.Background())
	require.NoError(t, err)

	owners := map[string]string{}
	for _, row := range r.Rows {
		for _, c := range row[1:3] {
			if prev, ok := owners[c.Text]; ok {
				assert.Equal(t, prev, c.Title, "label %s reused", c.Text)
			}
			owners[c.Text] = c.Title
			assert.True(t, strings.HasSuffix(c.Title, c.Text))
		}
	}
}
