package creature

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/generation"
)

// partial is the creature sections gathered so far. A nil section was not
// provided.
type partial struct {
	base         *entities.CreatureBase
	traits       []entities.Trait
	spellcasting *entities.Spellcasting
	actions      *entities.Actions
	reactions    []entities.Reaction
	legendary    *entities.LegendaryActions
}

// nameKey matches list entries by name, ignoring case and surrounding spaces
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// mergeNamed appends b to a and keeps the last entry for each name
func mergeNamed[T any](a, b []T, name func(T) string) []T {
	if b == nil {
		return a
	}
	return generation.DedupeLastByKey(slices.Concat(a, b), func(v T) string {
		return nameKey(name(v))
	})
}

// merge combines two partials. Scalar sections from b replace those in a;
// list sections are concatenated and deduplicated by name. Neither input is
// modified.
func merge(a, b partial) partial {
	out := a
	if b.base != nil {
		out.base = b.base
	}
	if b.spellcasting != nil {
		out.spellcasting = b.spellcasting
	}
	out.traits = mergeNamed(a.traits, b.traits, func(t entities.Trait) string { return t.Name })
	out.reactions = mergeNamed(a.reactions, b.reactions, func(r entities.Reaction) string { return r.Name })
	out.actions = mergeActions(a.actions, b.actions)
	out.legendary = mergeLegendary(a.legendary, b.legendary)
	return out
}

func mergeActions(a, b *entities.Actions) *entities.Actions {
	if b == nil {
		return a
	}

	var prev entities.Actions
	if a != nil {
		prev = *a
	}

	out := &entities.Actions{
		Multiattack: prev.Multiattack,
		Attacks: mergeNamed(prev.Attacks, b.Attacks,
			func(x entities.Attack) string { return x.Name }),
		SavingThrowAttacks: mergeNamed(prev.SavingThrowAttacks, b.SavingThrowAttacks,
			func(x entities.SavingThrowAttack) string { return x.Name }),
		SpecialActions: mergeNamed(prev.SpecialActions, b.SpecialActions,
			func(x entities.SpecialAction) string { return x.Name }),
	}
	if b.Multiattack != "" {
		out.Multiattack = b.Multiattack
	}
	return out
}

func mergeLegendary(a, b *entities.LegendaryActions) *entities.LegendaryActions {
	if b == nil {
		return a
	}

	var prev entities.LegendaryActions
	if a != nil {
		prev = *a
	}

	out := &entities.LegendaryActions{
		ActionsPerRound: prev.ActionsPerRound,
		Actions: mergeNamed(prev.Actions, b.Actions,
			func(x entities.LegendaryAction) string { return x.Name }),
	}
	if b.ActionsPerRound != 0 {
		out.ActionsPerRound = b.ActionsPerRound
	}
	return out
}

// seedFrom splits a stored creature into a partial for updates
func seedFrom(c *entities.Creature) partial {
	base := c.CreatureBase
	actions := c.Actions
	return partial{
		base:         &base,
		traits:       c.Traits,
		spellcasting: c.Spellcasting,
		actions:      &actions,
		reactions:    c.Reactions,
		legendary:    c.LegendaryActions,
	}
}

// finalize assembles and validates the creature
func finalize(p partial) (*entities.Creature, error) {
	if p.base == nil {
		return nil, errors.InvalidArgument("creature has no base stats; call " + ToolSetBaseStats)
	}

	c := &entities.Creature{
		CreatureBase:     *p.base,
		Traits:           nonNil(p.traits),
		Spellcasting:     p.spellcasting,
		Reactions:        p.reactions,
		LegendaryActions: p.legendary,
	}
	if p.actions != nil {
		c.Actions = *p.actions
	}

	c.SavingThrows = nonNil(c.SavingThrows)
	c.Skills = nonNil(c.Skills)
	c.ConditionImmunities = nonNil(c.ConditionImmunities)
	c.Languages = nonNil(c.Languages)
	if c.Speed == nil {
		c.Speed = map[entities.MovementMode]int{}
	}
	if c.Senses == nil {
		c.Senses = map[entities.Sense]int{}
	}
	if c.DamageModifiers == nil {
		c.DamageModifiers = map[entities.DamageType]entities.DamageModifier{}
	}
	c.Actions.Attacks = nonNil(c.Actions.Attacks)
	c.Actions.SavingThrowAttacks = nonNil(c.Actions.SavingThrowAttacks)
	c.Actions.SpecialActions = nonNil(c.Actions.SpecialActions)
	if len(c.Reactions) == 0 {
		c.Reactions = nil
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
