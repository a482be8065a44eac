package item

import (
	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/generation"
	"github.com/KirkDiggler/rpg-forge/internal/prompts"
	"github.com/KirkDiggler/rpg-forge/internal/schema"
)

// Tool names offered to the model
const (
	ToolSetItemBase         = "set_item_base"
	ToolSetItemDescriptions = "set_item_descriptions"
)

var toolGroups = [][]string{
	{ToolSetItemBase},
	{ToolSetItemDescriptions},
}

type descriptionsSection struct {
	Descriptions []entities.ItemDescription `json:"descriptions"`
}

func baseRefinements() []schema.Refinement {
	return []schema.Refinement{
		schema.Enum("type", entities.Strings(entities.ItemTypes)),
		schema.Enum("subtype", entities.Strings(entities.ItemSubtypes)),
		schema.Describe("subtype", "Must be one of the subtypes of the chosen type."),
		schema.Enum("rarity", entities.Strings(entities.Rarities)),
		schema.Range("bonus", 0, 3),
		schema.Describe("bonus", "Enhancement bonus, 0 for mundane items."),
		schema.Describe("attunement.restriction", "Who may attune, e.g. by a druid. Empty when attunement is not required."),
		schema.Enum("cost.unit", entities.Strings(entities.CoinUnits)),
		schema.Minimum("cost.amount", 0),
		schema.Minimum("weight", 0),
		schema.Describe("weight", "Weight in pounds."),
	}
}

func buildToolset(fanOut bool) (*generation.Toolset[partial], error) {
	catalog, err := prompts.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load prompt catalog")
	}

	ts := generation.NewToolset[partial]()

	desc, err := catalog.ToolDescription(ToolSetItemBase)
	if err != nil {
		return nil, errors.Wrap(err, "missing tool description")
	}
	baseTool, err := schema.NewTool[entities.ItemBase](ToolSetItemBase, desc, baseRefinements()...)
	if err != nil {
		return nil, err
	}
	generation.Register(ts, baseTool, func(b entities.ItemBase) partial {
		return partial{base: &b}
	})

	desc, err = catalog.ToolDescription(ToolSetItemDescriptions)
	if err != nil {
		return nil, errors.Wrap(err, "missing tool description")
	}
	descTool, err := schema.NewTool[descriptionsSection](ToolSetItemDescriptions, desc,
		schema.Describe("descriptions[].label", "Short heading such as Curse, Charges or Sentience."),
	)
	if err != nil {
		return nil, err
	}
	generation.Register(ts, descTool, func(s descriptionsSection) partial {
		if s.Descriptions == nil {
			s.Descriptions = []entities.ItemDescription{}
		}
		return partial{descriptions: s.Descriptions}
	})

	if fanOut {
		if err := ts.Group(toolGroups...); err != nil {
			return nil, err
		}
	}
	return ts, nil
}
