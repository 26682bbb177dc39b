package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/tdexplorer/internal/explorer"
	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
	"github.com/conduit-lang/tdexplorer/runtime/metadata"
)

func newExploreCommand(opts *rootOptions) *cobra.Command {
	var entityType, id string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Pick an entity type and id, then show the entity",
		Long: `Ask for an entity type and an entity id and show the entity report.
Values given as flags are not asked for.`,
		Example: `  # Interactive
  tdexplorer explore

  # Non-interactive
  tdexplorer explore --entity-type node --id 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, func(ctx context.Context, a *app, e *explorer.Explorer) (*report.Report, error) {
				choices := entityTypeChoices(a.registry)
				if len(choices) == 0 {
					return nil, errors.New("the catalogue defines no entity types")
				}

				if entityType == "" {
					labels := make([]string, len(choices))
					for i, c := range choices {
						labels[i] = c.label
					}
					var selected int
					prompt := &survey.Select{Message: "Entity type:", Options: labels}
					if err := survey.AskOne(prompt, &selected); err != nil {
						return nil, err
					}
					entityType = choices[selected].id
				}

				if id == "" {
					prompt := &survey.Input{Message: "Id:"}
					if err := survey.AskOne(prompt, &id, survey.WithValidator(survey.Required)); err != nil {
						return nil, err
					}
				}

				entityType, id = strings.TrimSpace(entityType), strings.TrimSpace(id)
				if err := validateEntry(entityType, id); err != nil {
					return nil, err
				}
				rep, err := e.Entity(ctx, entityType, id)
				return rep, a.describeLoad(err, entityType, id)
			})
		},
	}

	cmd.Flags().StringVar(&entityType, "entity-type", "", "Entity type to explore")
	cmd.Flags().StringVar(&id, "id", "", "Entity id to explore")
	return cmd
}

type entityTypeChoice struct {
	id    string
	label string
}

// entityTypeChoices lists the registered entity types as "Label (id)".
func entityTypeChoices(registry *metadata.Registry) []entityTypeChoice {
	var choices []entityTypeChoice
	for _, id := range registry.EntityTypeIDs() {
		label := id
		if l := registry.EntityTypeLabel(id); l != "" && l != id {
			label = fmt.Sprintf("%s (%s)", l, id)
		}
		choices = append(choices, entityTypeChoice{id: id, label: label})
	}
	return choices
}

// validateEntry requires both entry values.
func validateEntry(entityType, id string) error {
	var errs []error
	if entityType == "" {
		errs = append(errs, errors.New("entity type is required"))
	}
	if id == "" {
		errs = append(errs, errors.New("id is required"))
	}
	return errors.Join(errs...)
}
