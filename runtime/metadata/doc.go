// Package metadata holds the in-process registries the explorer reads: typed
// data definitions, validation constraints and entity schemas, all decoded
// from one catalogue document.
//
// # Catalogue Format
//
// A catalogue is YAML or JSON. Every mapping keeps its declaration order,
// which becomes the enumeration order of the registry:
//
//	types:
//	  string:
//	    label: String
//	    class: github.com/conduit-lang/tdexplorer/pkg/typeddata/plugins.StringData
//	    definition_class: github.com/conduit-lang/tdexplorer/pkg/typeddata/plugins.DataDefinition
//	constraints:
//	  Length:
//	    label: Length
//	    class: github.com/conduit-lang/tdexplorer/pkg/typeddata/plugins.LengthConstraint
//	    provider: core
//	field_types:
//	  string:
//	    item_data_type: field_item:string
//	    properties:
//	      value: string
//	entity_types:
//	  node:
//	    label: Content
//	    base_fields:
//	      - {name: title, label: Title, type: string, constraints: {Length: {max: 255}}}
//	    bundles:
//	      article:
//	        fields:
//	          - {name: body, label: Body, type: text_with_summary}
//	entities:
//	  - type: node
//	    id: 2
//	    bundle: article
//	    values:
//	      title: Hello
//
// Type definitions are open: any key besides class and definition_class is
// kept and shown as-is. A field whose type has no field_types entry has no
// item definition. A field value given as a bare scalar is a single item
// with one "value" property.
//
// # Example Usage
//
//	registry, err := metadata.Load("catalogue.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	def, err := registry.Definition("string")
//	fields, err := registry.FieldDefinitions("node", "article")
package metadata
