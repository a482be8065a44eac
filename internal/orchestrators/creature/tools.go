package creature

import (
	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/generation"
	"github.com/KirkDiggler/rpg-forge/internal/prompts"
	"github.com/KirkDiggler/rpg-forge/internal/schema"
)

// Tool names offered to the model, one per creature section
const (
	ToolSetBaseStats        = "set_base_stats"
	ToolSetTraits           = "set_traits"
	ToolSetSpellcasting     = "set_spellcasting"
	ToolSetAttacks          = "set_attacks"
	ToolSetLegendaryActions = "set_legendary_actions"
	ToolSetReactions        = "set_reactions"
)

// toolGroups splits the sections for parallel invocation
var toolGroups = [][]string{
	{ToolSetBaseStats, ToolSetTraits},
	{ToolSetAttacks},
	{ToolSetSpellcasting, ToolSetLegendaryActions, ToolSetReactions},
}

var (
	dieSizes       = []float64{4, 6, 8, 10, 12, 20}
	rechargeValues = []float64{0, 2, 3, 4, 5, 6}
)

type traitsSection struct {
	Traits []entities.Trait `json:"traits"`
}

type reactionsSection struct {
	Reactions []entities.Reaction `json:"reactions"`
}

func damageRefinements(prefix string) []schema.Refinement {
	return []schema.Refinement{
		schema.Minimum(prefix+".diceCount", 1),
		schema.NumberEnum(prefix+".dieSize", dieSizes),
		schema.Enum(prefix+".damageType", entities.Strings(entities.DamageTypes)),
	}
}

func baseStatsRefinements() []schema.Refinement {
	refinements := []schema.Refinement{
		schema.Enum("pronoun", entities.Strings(entities.Pronouns)),
		schema.Enum("type", entities.Strings(entities.CreatureTypes)),
		schema.Enum("alignment", entities.Strings(entities.Alignments)),
		schema.Enum("size", entities.Strings(entities.Sizes)),
		schema.NumberEnum("challengeRating", entities.ChallengeRatings),
		schema.Minimum("hitDiceAmount", 1),
		schema.Describe("hitDiceAmount", "Number of hit dice. The die size follows from the creature's size."),
		schema.Range("armorClass", 1, 30),
		schema.Describe("armorType", "Armor description such as natural armor or chain mail."),
		schema.Enum("savingThrows[]", entities.Strings(entities.Abilities)),
		schema.Enum("skills[]", entities.Strings(entities.Skills)),
		schema.Enum("conditionImmunities[]", entities.Strings(entities.Conditions)),
		schema.Minimum("telepathy", 0),
		// map value refinements must run before the maps become fixed objects
		schema.Minimum("speed.*", 0),
		schema.FixedKeys("speed", entities.Strings(entities.MovementModes)),
		schema.Minimum("senses.*", 0),
		schema.FixedKeys("senses", entities.Strings(entities.Senses)),
		schema.Enum("damageModifiers.*", entities.Strings(entities.DamageModifiers)),
		schema.FixedKeys("damageModifiers", entities.Strings(entities.ModifiableDamageTypes)),
	}
	for _, ability := range entities.Abilities {
		refinements = append(refinements, schema.Range("abilityScores."+string(ability), 1, 30))
	}
	return refinements
}

func attackRefinements() []schema.Refinement {
	refinements := []schema.Refinement{
		schema.Describe("multiattack", "Plain text describing which attacks the creature makes together."),
		schema.Enum("attacks[].kind", entities.Strings(entities.AttackKinds)),
		schema.Enum("attacks[].ability", entities.Strings(entities.Abilities)),
		schema.Describe("attacks[].reach", "Reach in feet for melee attacks."),
		schema.Describe("attacks[].normalRange", "Normal range in feet for ranged attacks."),
		schema.Minimum("attacks[].targets", 1),
		schema.Enum("savingThrowAttacks[].savingThrow", entities.Strings(entities.Abilities)),
		schema.Enum("savingThrowAttacks[].dcAbility", entities.Strings(entities.Abilities)),
		schema.NumberEnum("savingThrowAttacks[].recharge", rechargeValues),
		schema.Describe("savingThrowAttacks[].recharge", "Lowest d6 roll that recharges the action, 0 if it needs no recharge."),
		schema.NumberEnum("specialActions[].recharge", rechargeValues),
	}
	refinements = append(refinements, damageRefinements("attacks[].damage[]")...)
	refinements = append(refinements, damageRefinements("savingThrowAttacks[].damage[]")...)
	return refinements
}

// buildToolset builds the creature tools and their decoders. It is cheap
// and runs per request.
func buildToolset(fanOut bool) (*generation.Toolset[partial], error) {
	catalog, err := prompts.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load prompt catalog")
	}
	describe := func(name string) (string, error) {
		d, err := catalog.ToolDescription(name)
		if err != nil {
			return "", errors.Wrap(err, "missing tool description")
		}
		return d, nil
	}

	ts := generation.NewToolset[partial]()

	desc, err := describe(ToolSetBaseStats)
	if err != nil {
		return nil, err
	}
	baseTool, err := schema.NewTool[entities.CreatureBase](ToolSetBaseStats, desc, baseStatsRefinements()...)
	if err != nil {
		return nil, err
	}
	generation.Register(ts, baseTool, func(b entities.CreatureBase) partial {
		return partial{base: &b}
	})

	if desc, err = describe(ToolSetTraits); err != nil {
		return nil, err
	}
	traitsTool, err := schema.NewTool[traitsSection](ToolSetTraits, desc)
	if err != nil {
		return nil, err
	}
	generation.Register(ts, traitsTool, func(s traitsSection) partial {
		return partial{traits: nonNil(s.Traits)}
	})

	if desc, err = describe(ToolSetSpellcasting); err != nil {
		return nil, err
	}
	spellTool, err := schema.NewTool[entities.Spellcasting](ToolSetSpellcasting, desc,
		schema.Enum("ability", entities.Strings(entities.Abilities)),
		schema.Minimum("daily[].uses", 1),
		schema.Range("slots[].level", 1, 9),
		schema.Minimum("slots[].slots", 1),
	)
	if err != nil {
		return nil, err
	}
	generation.Register(ts, spellTool, func(s entities.Spellcasting) partial {
		return partial{spellcasting: &s}
	})

	if desc, err = describe(ToolSetAttacks); err != nil {
		return nil, err
	}
	attackTool, err := schema.NewTool[entities.Actions](ToolSetAttacks, desc, attackRefinements()...)
	if err != nil {
		return nil, err
	}
	generation.Register(ts, attackTool, func(a entities.Actions) partial {
		return partial{actions: &a}
	})

	if desc, err = describe(ToolSetLegendaryActions); err != nil {
		return nil, err
	}
	legendaryTool, err := schema.NewTool[entities.LegendaryActions](ToolSetLegendaryActions, desc,
		schema.Range("actionsPerRound", 1, 5),
		schema.Range("actions[].cost", 1, 3),
	)
	if err != nil {
		return nil, err
	}
	generation.Register(ts, legendaryTool, func(l entities.LegendaryActions) partial {
		return partial{legendary: &l}
	})

	if desc, err = describe(ToolSetReactions); err != nil {
		return nil, err
	}
	reactionsTool, err := schema.NewTool[reactionsSection](ToolSetReactions, desc)
	if err != nil {
		return nil, err
	}
	generation.Register(ts, reactionsTool, func(s reactionsSection) partial {
		return partial{reactions: nonNil(s.Reactions)}
	})

	if fanOut {
		if err := ts.Group(toolGroups...); err != nil {
			return nil, err
		}
	}
	return ts, nil
}
