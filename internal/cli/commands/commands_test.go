package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/conduit-lang/tdexplorer/internal/cli/config"
	"github.com/conduit-lang/tdexplorer/internal/entity"
	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
	"github.com/conduit-lang/tdexplorer/runtime/metadata"
)

const pluginsPkg = "github.com/conduit-lang/tdexplorer/pkg/typeddata/plugins."

var testCatalogue = fmt.Sprintf(`
types:
  string:
    label: String
    class: %[1]sStringData
    definition_class: %[1]sDataDefinition
  field_item:string:
    label: Text (plain)
    class: %[1]sFieldItem
    definition_class: %[1]sFieldItemDataDefinition
constraints:
  Length:
    label: Length
    class: %[1]sLengthConstraint
    provider: core
field_types:
  string:
    properties:
      value: string
entity_types:
  node:
    label: Content
    base_fields:
      - name: title
        label: Title
        type: string
        constraints:
          Length: {max: 255}
  user:
    base_fields:
      - {name: name, label: Name, type: string}
entities:
  - {type: node, id: 2, values: {title: Hello}}
  - {type: node, id: 3, values: {title: World}}
`, pluginsPkg)

// writeConfig writes a catalogue and a config file and returns the config path.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	catalogue := filepath.Join(dir, "catalogue.yaml")
	require.NoError(t, os.WriteFile(catalogue, []byte(testCatalogue), 0o644))

	config := filepath.Join(dir, "tdexplorer.yaml")
	content := fmt.Sprintf("catalogue: %s\nlog:\n  level: error\n%s", catalogue, extra)
	require.NoError(t, os.WriteFile(config, []byte(content), 0o644))
	return config
}

func run(t *testing.T, config string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", config, "--no-color"}, args...))
	err = execute(cmd)
	return out.String(), errOut.String(), err
}

func TestTypesCommand(t *testing.T) {
	out, _, err := run(t, writeConfig(t, ""), "types")
	require.NoError(t, err)

	assert.Contains(t, out, "Typed data definitions")
	assert.Contains(t, out, "plugins.StringData")
	assert.Contains(t, out, "plugins.FieldItemDataDefinition")
	assert.Contains(t, out, "Explore")
}

func TestTypeCommand(t *testing.T) {
	config := writeConfig(t, "")

	out, _, err := run(t, config, "type", "string")
	require.NoError(t, err)
	assert.Contains(t, out, "Typed data definition string")
	assert.Contains(t, out, "label")

	_, stderr, err := run(t, config, "type", "strng")
	require.Error(t, err)
	assert.Contains(t, stderr, "UNKNOWN TYPE")
	assert.Contains(t, stderr, "Did you mean: string?")
	assert.Contains(t, stderr, "tdexplorer types")
}

func TestEntityCommand_JSON(t *testing.T) {
	out, _, err := run(t, writeConfig(t, ""), "entity", "node", "2", "--format", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "Entity node/2", rep.Title)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Title", rep.Rows[0][0].Text)

	action := rep.Rows[0][len(rep.Rows[0])-1]
	assert.Equal(t, "tdexplorer field node 2 title", action.URL)
}

func TestEntityCommand_Errors(t *testing.T) {
	config := writeConfig(t, "")

	_, stderr, err := run(t, config, "entity", "nod", "2")
	require.Error(t, err)
	assert.Contains(t, stderr, "UNKNOWN ENTITY TYPE")
	assert.Contains(t, stderr, "Did you mean: node?")

	_, stderr, err = run(t, config, "entity", "node", "4")
	require.Error(t, err)
	assert.Contains(t, stderr, "ENTITY NOT FOUND")
	assert.Contains(t, stderr, "Did you mean: 2, 3?")
}

func TestFieldCommand(t *testing.T) {
	config := writeConfig(t, "")

	out, _, err := run(t, config, "field", "node", "2", "title", "--links")
	require.NoError(t, err)
	assert.Contains(t, out, "The Typed Data plugin id is field_item:string <tdexplorer type field_item:string>.")
	assert.Contains(t, out, "string <tdexplorer type string>")
	assert.Contains(t, out, "Hello")

	_, stderr, err := run(t, config, "field", "node", "2", "titel")
	require.Error(t, err)
	assert.Contains(t, stderr, "UNKNOWN FIELD")
	assert.Contains(t, stderr, "Did you mean: title?")
}

func TestConstraintsCommand(t *testing.T) {
	out, _, err := run(t, writeConfig(t, ""), "constraints")
	require.NoError(t, err)
	assert.Contains(t, out, "Validation constraints")
	assert.Contains(t, out, "Length")
	assert.Contains(t, out, "core")
}

func TestExploreCommand_Flags(t *testing.T) {
	out, _, err := run(t, writeConfig(t, ""), "explore", "--entity-type", "node", "--id", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Entity node/3")
}

func TestSeedCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "entities.db")
	config := writeConfig(t, fmt.Sprintf("store:\n  driver: sqlite3\n  dsn: %s\n", db))

	_, stderr, err := run(t, config, "entity", "node", "2")
	require.Error(t, err, "the table does not exist before seeding")
	assert.Contains(t, stderr, "STORE NOT INITIALIZED")

	out, _, err := run(t, config, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 2 entities into entities (sqlite3)")

	out, _, err = run(t, config, "field", "node", "3", "title")
	require.NoError(t, err)
	assert.Contains(t, out, "World")
}

func TestSeedCommand_NoEntities(t *testing.T) {
	dir := t.TempDir()
	catalogue := filepath.Join(dir, "catalogue.yaml")
	require.NoError(t, os.WriteFile(catalogue, []byte("entity_types:\n  node:\n    label: Content\n"), 0o644))
	config := filepath.Join(dir, "tdexplorer.yaml")
	content := fmt.Sprintf("catalogue: %s\nlog:\n  level: error\nstore:\n  driver: sqlite3\n  dsn: %s\n",
		catalogue, filepath.Join(dir, "entities.db"))
	require.NoError(t, os.WriteFile(config, []byte(content), 0o644))

	out, stderr, err := run(t, config, "seed")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "NOTHING TO SEED")
	assert.Contains(t, stderr, "lists no entities")
}

func TestNewServer_LogsRoutes(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)
	registry, err := metadata.Load(cfg.Catalogue)
	require.NoError(t, err)
	store, err := entity.NewMemoryStore(registry, registry.Entities()...)
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	a := &app{cfg: cfg, logger: zap.New(core), registry: registry, classes: newClassCatalog(), store: store}

	srv, err := newServer(a)
	require.NoError(t, err)
	require.NotNil(t, srv)

	routes := logs.FilterMessage("route registered")
	assert.NotZero(t, routes.Len())
	field := routes.FilterField(zap.String("pattern", "/entity/{entityType}/{id}/{field}"))
	assert.NotZero(t, field.Len())
}

func TestSeedCommand_RequiresSQLStore(t *testing.T) {
	_, stderr, err := run(t, writeConfig(t, ""), "seed")
	require.Error(t, err)
	assert.Contains(t, stderr, "seed needs a SQL store")
}

func TestInvalidFormat(t *testing.T) {
	_, stderr, err := run(t, writeConfig(t, ""), "types", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, stderr, "invalid --format")
}

func TestMissingCatalogue(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "tdexplorer.yaml")
	require.NoError(t, os.WriteFile(config, []byte("catalogue: "+filepath.Join(dir, "none.yaml")+"\n"), 0o644))

	_, stderr, err := run(t, config, "types")
	require.Error(t, err)
	assert.Contains(t, stderr, "Error:")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, writeConfig(t, ""), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tdexplorer version: dev")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := run(t, writeConfig(t, ""), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "tdexplorer")
}

func TestShellCommand(t *testing.T) {
	assert.Equal(t, "tdexplorer type field_item:string", shellCommand("tdexplorer", "type", "field_item:string"))
	assert.Equal(t, "tdexplorer field node 'a b' title", shellCommand("tdexplorer", "field", "node", "a b", "title"))
	assert.Equal(t, `tdexplorer type 'it'\''s'`, shellCommand("tdexplorer", "type", "it's"))
	assert.Equal(t, "tdexplorer type ''", shellCommand("tdexplorer", "type", ""))
}

func TestEntityTypeChoices(t *testing.T) {
	cat, err := metadata.Parse([]byte(testCatalogue), metadata.FormatYAML)
	require.NoError(t, err)
	registry, err := metadata.New(cat)
	require.NoError(t, err)

	assert.Equal(t, []entityTypeChoice{
		{id: "node", label: "Content (node)"},
		{id: "user", label: "user"},
	}, entityTypeChoices(registry))
}

func TestValidateEntry(t *testing.T) {
	assert.NoError(t, validateEntry("node", "2"))
	assert.ErrorContains(t, validateEntry("", "2"), "entity type is required")
	err := validateEntry("", "")
	assert.ErrorContains(t, err, "entity type is required")
	assert.ErrorContains(t, err, "id is required")
}

func TestServerURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8088", serverURL("[::]:8088"))
	assert.Equal(t, "http://127.0.0.1:9000", serverURL("127.0.0.1:9000"))
	assert.Equal(t, "http://weird", serverURL("weird"))
}

func TestSampleCatalogue(t *testing.T) {
	catalogue, err := filepath.Abs(filepath.Join("..", "..", "..", "examples", "catalogue.yaml"))
	require.NoError(t, err)
	config := filepath.Join(t.TempDir(), "tdexplorer.yaml")
	require.NoError(t, os.WriteFile(config, []byte("catalogue: "+catalogue+"\nlog:\n  level: error\n"), 0o644))

	for _, args := range [][]string{
		{"types"},
		{"type", "field_item:string"},
		{"constraints"},
		{"entity", "node", "2"},
		{"entity", "taxonomy_term", "7"},
		{"field", "node", "2", "body"},
		{"field", "node", "2", "tags"},
		{"field", "user", "1", "mail"},
	} {
		t.Run(fmt.Sprint(args), func(t *testing.T) {
			out, stderr, err := run(t, config, args...)
			require.NoError(t, err, stderr)
			assert.NotEmpty(t, out)
		})
	}
}
