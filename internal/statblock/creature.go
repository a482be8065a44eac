package statblock

import (
	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

// Entry is a named paragraph such as a trait or an action
type Entry struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// AbilityLine is one column of the ability score table
type AbilityLine struct {
	Ability  string `json:"ability"`
	Score    int    `json:"score"`
	Modifier string `json:"modifier"`
}

// SpellcastingBlock is the spellcasting trait
type SpellcastingBlock struct {
	Header string   `json:"header"`
	Lines  []string `json:"lines"`
}

// LegendaryBlock is the legendary actions section
type LegendaryBlock struct {
	Header  string  `json:"header"`
	Actions []Entry `json:"actions"`
}

// CreatureBlock is every display value of a creature stat block
type CreatureBlock struct {
	Name                string              `json:"name"`
	Subtitle            string              `json:"subtitle"`
	ArmorClass          string              `json:"armorClass"`
	HitPoints           string              `json:"hitPoints"`
	Speed               string              `json:"speed"`
	Abilities           []AbilityLine       `json:"abilities"`
	SavingThrows        string              `json:"savingThrows,omitempty"`
	Skills              string              `json:"skills,omitempty"`
	DamageModifiers     DamageModifierLines `json:"damageModifiers"`
	ConditionImmunities string              `json:"conditionImmunities,omitempty"`
	Senses              string              `json:"senses"`
	Languages           string              `json:"languages"`
	Challenge           string              `json:"challenge"`
	ProficiencyBonus    string              `json:"proficiencyBonus"`
	Traits              []Entry             `json:"traits"`
	Spellcasting        *SpellcastingBlock  `json:"spellcasting,omitempty"`
	Actions             []Entry             `json:"actions"`
	Reactions           []Entry             `json:"reactions,omitempty"`
	Legendary           *LegendaryBlock     `json:"legendary,omitempty"`
}

// NewCreatureBlock derives the stat block of a validated creature
func NewCreatureBlock(c *entities.Creature) *CreatureBlock {
	b := &CreatureBlock{
		Name:                c.Name,
		Subtitle:            Subtitle(c),
		ArmorClass:          ArmorClass(c),
		HitPoints:           HitPoints(c),
		Speed:               Speed(c),
		SavingThrows:        SavingThrows(c),
		Skills:              Skills(c),
		DamageModifiers:     DamageModifiers(c),
		ConditionImmunities: ConditionImmunities(c),
		Senses:              Senses(c),
		Languages:           Languages(c),
		Challenge:           Challenge(c.ChallengeRating),
		ProficiencyBonus:    FormatModifier(ProficiencyBonus(c.ChallengeRating)),
		Traits:              make([]Entry, 0, len(c.Traits)),
		Actions:             make([]Entry, 0),
	}

	for _, a := range entities.Abilities {
		score := c.AbilityScores.Get(a)
		b.Abilities = append(b.Abilities, AbilityLine{
			Ability:  a.Short(),
			Score:    score,
			Modifier: FormatModifier(AbilityModifier(score)),
		})
	}

	for _, t := range c.Traits {
		b.Traits = append(b.Traits, Entry{Name: t.Name, Text: t.Description})
	}

	if c.Spellcasting != nil {
		b.Spellcasting = &SpellcastingBlock{
			Header: SpellcastingHeader(c),
			Lines:  SpellcastingLines(c.Spellcasting),
		}
	}

	if c.Actions.Multiattack != "" {
		b.Actions = append(b.Actions, Entry{Name: "Multiattack", Text: c.Actions.Multiattack})
	}
	for _, a := range c.Actions.Attacks {
		b.Actions = append(b.Actions, Entry{Name: a.Name, Text: AttackText(c, a)})
	}
	for _, a := range c.Actions.SavingThrowAttacks {
		b.Actions = append(b.Actions, Entry{Name: a.Name + recharge(a.Recharge), Text: SavingThrowAttackText(c, a)})
	}
	for _, a := range c.Actions.SpecialActions {
		b.Actions = append(b.Actions, Entry{Name: a.Name + recharge(a.Recharge), Text: a.Description})
	}

	for _, r := range c.Reactions {
		b.Reactions = append(b.Reactions, Entry{Name: r.Name, Text: r.Description})
	}

	if c.LegendaryActions != nil {
		b.Legendary = &LegendaryBlock{Header: LegendaryHeader(c)}
		for _, a := range c.LegendaryActions.Actions {
			b.Legendary.Actions = append(b.Legendary.Actions, Entry{Name: LegendaryActionName(a), Text: a.Description})
		}
	}

	return b
}
