// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

// CreatureBuilder provides a fluent interface for building test Creature instances
type CreatureBuilder struct {
	creature *entities.Creature
}

// NewCreatureBuilder creates a builder holding a small, valid medium humanoid:
// 8d8 hit dice with Constitution 14, CR 5, one melee attack.
func NewCreatureBuilder() *CreatureBuilder {
	return &CreatureBuilder{
		creature: &entities.Creature{
			CreatureBase: entities.CreatureBase{
				Name:            "Bog Warden",
				Lore:            "Keepers of the drowned shrines.",
				Appearance:      "A hunched figure draped in reeds.",
				Pronoun:         entities.PronounThey,
				Type:            entities.CreatureTypeHumanoid,
				Alignment:       entities.AlignmentNeutral,
				Size:            entities.SizeMedium,
				ChallengeRating: 5,
				AbilityScores: entities.AbilityScores{
					Strength:     16,
					Dexterity:    12,
					Constitution: 14,
					Intelligence: 10,
					Wisdom:       13,
					Charisma:     8,
				},
				HitDiceAmount:       8,
				ArmorClass:          15,
				ArmorType:           "natural armor",
				Speed:               map[entities.MovementMode]int{entities.MovementWalk: 30, entities.MovementSwim: 30},
				SavingThrows:        []entities.Ability{entities.AbilityStrength, entities.AbilityConstitution},
				Skills:              []entities.Skill{entities.SkillPerception, entities.SkillStealth},
				Senses:              map[entities.Sense]int{entities.SenseDarkvision: 60},
				DamageModifiers:     map[entities.DamageType]entities.DamageModifier{entities.DamageTypePoison: entities.DamageModifierResistant},
				ConditionImmunities: []entities.Condition{},
				Languages:           []string{"Common", "Sylvan"},
			},
			Traits: []entities.Trait{
				{Name: "Amphibious", Description: "The warden can breathe air and water."},
			},
			Actions: entities.Actions{
				Attacks: []entities.Attack{
					{
						Name:    "Gaff Hook",
						Kind:    entities.AttackKindMelee,
						Ability: entities.AbilityStrength,
						Reach:   10,
						Targets: 1,
						Damage: []entities.Damage{
							{DiceCount: 2, DieSize: 6, DamageType: entities.DamageTypePiercing},
						},
					},
				},
				SavingThrowAttacks: []entities.SavingThrowAttack{},
				SpecialActions:     []entities.SpecialAction{},
			},
		},
	}
}

// WithName sets the creature name
func (b *CreatureBuilder) WithName(name string) *CreatureBuilder {
	b.creature.Name = name
	return b
}

// WithSize sets the size
func (b *CreatureBuilder) WithSize(size entities.Size) *CreatureBuilder {
	b.creature.Size = size
	return b
}

// WithChallengeRating sets the challenge rating
func (b *CreatureBuilder) WithChallengeRating(cr float64) *CreatureBuilder {
	b.creature.ChallengeRating = cr
	return b
}

// WithAbilityScores replaces all six ability scores
func (b *CreatureBuilder) WithAbilityScores(scores entities.AbilityScores) *CreatureBuilder {
	b.creature.AbilityScores = scores
	return b
}

// WithHitDice sets the hit dice amount
func (b *CreatureBuilder) WithHitDice(n int) *CreatureBuilder {
	b.creature.HitDiceAmount = n
	return b
}

// WithDamageModifiers replaces the damage modifier map
func (b *CreatureBuilder) WithDamageModifiers(mods map[entities.DamageType]entities.DamageModifier) *CreatureBuilder {
	b.creature.DamageModifiers = mods
	return b
}

// WithTraits replaces the traits
func (b *CreatureBuilder) WithTraits(traits ...entities.Trait) *CreatureBuilder {
	b.creature.Traits = traits
	return b
}

// WithAttacks replaces the targeted attacks
func (b *CreatureBuilder) WithAttacks(attacks ...entities.Attack) *CreatureBuilder {
	b.creature.Actions.Attacks = attacks
	return b
}

// WithSavingThrowAttacks replaces the saving throw attacks
func (b *CreatureBuilder) WithSavingThrowAttacks(attacks ...entities.SavingThrowAttack) *CreatureBuilder {
	b.creature.Actions.SavingThrowAttacks = attacks
	return b
}

// WithMultiattack sets the multiattack text
func (b *CreatureBuilder) WithMultiattack(text string) *CreatureBuilder {
	b.creature.Actions.Multiattack = text
	return b
}

// WithSpellcasting sets the spellcasting block
func (b *CreatureBuilder) WithSpellcasting(s *entities.Spellcasting) *CreatureBuilder {
	b.creature.Spellcasting = s
	return b
}

// WithReactions replaces the reactions
func (b *CreatureBuilder) WithReactions(reactions ...entities.Reaction) *CreatureBuilder {
	b.creature.Reactions = reactions
	return b
}

// WithLegendaryActions sets the legendary actions block
func (b *CreatureBuilder) WithLegendaryActions(l *entities.LegendaryActions) *CreatureBuilder {
	b.creature.LegendaryActions = l
	return b
}

// Build returns the creature
func (b *CreatureBuilder) Build() *entities.Creature {
	return b.creature
}
