package explorer

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// Entity lists the field definitions of a loaded entity, base fields first.
func (e *Explorer) Entity(ctx context.Context, entityType, id string) (*report.Report, error) {
	entity, err := e.load(ctx, entityType, id)
	if err != nil {
		return nil, err
	}
	req := e.newRequest()

	definitions := entity.FieldDefinitions()
	rows := make([]report.Row, 0, len(definitions))
	for _, def := range definitions {
		class, err := req.ClassNameLink(def.Class())
		if err != nil {
			return nil, fmt.Errorf("field %s class: %w", def.Name(), err)
		}
		constraints, err := req.Format(def.Constraints())
		if err != nil {
			return nil, fmt.Errorf("field %s constraints: %w", def.Name(), err)
		}
		rows = append(rows, report.Row{
			report.TextCell(def.Label()),
			report.TextCell(def.Name()),
			report.TextCell(def.Type()),
			report.TextCell(def.Description()),
			report.TextCell(def.DataType()),
			class,
			report.TextCell(def.TargetEntityTypeID()),
			report.TextCell(def.TargetBundle()),
			constraints,
			report.LinkCell("Explore", e.linker.FieldURL(entityType, id, def.Name())),
		})
	}

	return e.built(&report.Report{
		Title: fmt.Sprintf("Entity %s/%s", entityType, id),
		Headers: []string{
			"Label", "Name", "Type", "Description", "Data type",
			"Class", "Entity", "Bundle", "Constraints", "Action",
		},
		Rows: rows,
	}), nil
}

// Field descends into one field of a loaded entity: which classes back its
// definition and live value, and one row per item property with the
// property's data type and current value.
func (e *Explorer) Field(ctx context.Context, entityType, id, name string) (*report.Report, error) {
	entity, err := e.load(ctx, entityType, id)
	if err != nil {
		return nil, err
	}
	def, ok := entity.FieldDefinition(name)
	if !ok {
		return nil, typeddata.UnknownField(entityType, name)
	}
	list, err := entity.Get(name)
	if err != nil {
		return nil, err
	}
	req := e.newRequest()

	definitionClass, err := req.ClassLink(reflect.TypeOf(def))
	if err != nil {
		return nil, fmt.Errorf("field %s definition: %w", name, err)
	}
	dataClass, err := req.ClassLink(reflect.TypeOf(list))
	if err != nil {
		return nil, fmt.Errorf("field %s typed data: %w", name, err)
	}
	preamble := []report.Row{
		sentence("The Data Definition of "+name+" is ", definitionClass),
		sentence("The Typed Data of "+name+" is ", dataClass),
	}

	item := def.ItemDefinition()
	if item == nil {
		return e.built(&report.Report{
			Title:    fmt.Sprintf("Field %s of %s/%s", name, entityType, id),
			Preamble: preamble,
			Headers:  fieldHeaders,
		}), nil
	}

	plugin, err := req.typeLink(item.DataType(), e.linker)
	if err != nil {
		return nil, fmt.Errorf("field %s item: %w", name, err)
	}
	preamble = append(preamble, sentence("The Typed Data plugin id is ", plugin))

	properties := item.PropertyDefinitions()
	rows := make([]report.Row, 0, len(properties))
	for _, prop := range properties {
		dataType, err := req.typeLink(prop.DataType, e.linker)
		if err != nil {
			return nil, fmt.Errorf("field %s property %s: %w", name, prop.Name, err)
		}
		row, err := req.Row(prop.Name, dataType, list.Property(prop.Name))
		if err != nil {
			return nil, fmt.Errorf("field %s property %s: %w", name, prop.Name, err)
		}
		rows = append(rows, row)
	}

	return e.built(&report.Report{
		Title:    fmt.Sprintf("Field %s of %s/%s", name, entityType, id),
		Preamble: preamble,
		Headers:  fieldHeaders,
		Rows:     rows,
	}), nil
}

var fieldHeaders = []string{"Property", "Type", "Value"}

func (e *Explorer) load(ctx context.Context, entityType, id string) (typeddata.Entity, error) {
	entity, err := e.entities.Load(ctx, entityType, id)
	if err != nil {
		e.logger.Debug("entity load failed",
			zap.String("entity_type", entityType),
			zap.String("id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return entity, nil
}

func sentence(text string, link report.Cell) report.Row {
	return report.Row{report.TextCell(text), link, report.TextCell(".")}
}
