package entities

import (
	"fmt"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

// AbilityScores holds the six ability scores
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Get returns the score for an ability
func (a AbilityScores) Get(ability Ability) int {
	switch ability {
	case AbilityStrength:
		return a.Strength
	case AbilityDexterity:
		return a.Dexterity
	case AbilityConstitution:
		return a.Constitution
	case AbilityIntelligence:
		return a.Intelligence
	case AbilityWisdom:
		return a.Wisdom
	case AbilityCharisma:
		return a.Charisma
	default:
		return 10
	}
}

// CreatureBase is the identity and core statistics of a creature
type CreatureBase struct {
	Name                string                        `json:"name"`
	Lore                string                        `json:"lore"`
	Appearance          string                        `json:"appearance"`
	Pronoun             Pronoun                       `json:"pronoun"`
	Type                CreatureType                  `json:"type"`
	Alignment           Alignment                     `json:"alignment"`
	Size                Size                          `json:"size"`
	ChallengeRating     float64                       `json:"challengeRating"`
	AbilityScores       AbilityScores                 `json:"abilityScores"`
	HitDiceAmount       int                           `json:"hitDiceAmount"`
	ArmorClass          int                           `json:"armorClass"`
	ArmorType           string                        `json:"armorType,omitempty"`
	Speed               map[MovementMode]int          `json:"speed"`
	Hover               bool                          `json:"hover,omitempty"`
	SavingThrows        []Ability                     `json:"savingThrows"`
	Skills              []Skill                       `json:"skills"`
	Senses              map[Sense]int                 `json:"senses"`
	DamageModifiers     map[DamageType]DamageModifier `json:"damageModifiers"`
	ConditionImmunities []Condition                   `json:"conditionImmunities"`
	Languages           []string                      `json:"languages"`
	Telepathy           int                           `json:"telepathy,omitempty"`
}

// Trait is a passive feature such as Amphibious or Magic Resistance
type Trait struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DailySpells is a group of spells castable a number of times per day each
type DailySpells struct {
	Uses   int      `json:"uses"`
	Spells []string `json:"spells"`
}

// SpellSlotLevel is the slots and prepared spells for one spell level
type SpellSlotLevel struct {
	Level  int      `json:"level"`
	Slots  int      `json:"slots"`
	Spells []string `json:"spells"`
}

// Spellcasting describes innate or prepared spellcasting
type Spellcasting struct {
	Ability Ability          `json:"ability"`
	AtWill  []string         `json:"atWill"`
	Daily   []DailySpells    `json:"daily"`
	Slots   []SpellSlotLevel `json:"slots"`
}

// SpellNames returns every spell mentioned, in block order
func (s *Spellcasting) SpellNames() []string {
	if s == nil {
		return nil
	}
	var names []string
	names = append(names, s.AtWill...)
	for _, d := range s.Daily {
		names = append(names, d.Spells...)
	}
	for _, l := range s.Slots {
		names = append(names, l.Spells...)
	}
	return names
}

// Damage is one damage roll of an attack
type Damage struct {
	DiceCount  int        `json:"diceCount"`
	DieSize    int        `json:"dieSize"`
	DamageType DamageType `json:"damageType"`
}

// Attack is a targeted weapon or spell attack that rolls to hit
type Attack struct {
	Name        string     `json:"name"`
	Kind        AttackKind `json:"kind"`
	Ability     Ability    `json:"ability"`
	Reach       int        `json:"reach,omitempty"`
	NormalRange int        `json:"normalRange,omitempty"`
	LongRange   int        `json:"longRange,omitempty"`
	Targets     int        `json:"targets"`
	Damage      []Damage   `json:"damage"`
}

// SavingThrowAttack is an effect the target resists with a saving throw
type SavingThrowAttack struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	SavingThrow         Ability  `json:"savingThrow"`
	DCAbility           Ability  `json:"dcAbility"`
	Damage              []Damage `json:"damage"`
	HalfDamageOnSuccess bool     `json:"halfDamageOnSuccess"`
	Recharge            int      `json:"recharge,omitempty"`
}

// SpecialAction is an action with no attack roll or saving throw
type SpecialAction struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Recharge    int    `json:"recharge,omitempty"`
}

// Actions groups everything a creature can do on its turn
type Actions struct {
	Multiattack        string              `json:"multiattack,omitempty"`
	Attacks            []Attack            `json:"attacks"`
	SavingThrowAttacks []SavingThrowAttack `json:"savingThrowAttacks"`
	SpecialActions     []SpecialAction     `json:"specialActions"`
}

// Reaction is something a creature does in response to a trigger
type Reaction struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LegendaryAction is one option from a legendary action list
type LegendaryAction struct {
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

// LegendaryActions is the legendary action block
type LegendaryActions struct {
	ActionsPerRound int               `json:"actionsPerRound"`
	Actions         []LegendaryAction `json:"actions"`
}

// Creature is a complete, generated monster
type Creature struct {
	CreatureBase
	Traits           []Trait           `json:"traits"`
	Spellcasting     *Spellcasting     `json:"spellcasting,omitempty"`
	Actions          Actions           `json:"actions"`
	Reactions        []Reaction        `json:"reactions,omitzero"`
	LegendaryActions *LegendaryActions `json:"legendaryActions,omitempty"`
}

// Validate checks every declarative rule of the creature model
func (c *Creature) Validate() error {
	if c == nil {
		return errors.InvalidArgument("creature is required")
	}

	vb := errors.NewValidationBuilder()
	c.CreatureBase.validate(vb)

	for i, t := range c.Traits {
		errors.ValidateRequired(fmt.Sprintf("traits[%d].name", i), t.Name, vb)
		errors.ValidateRequired(fmt.Sprintf("traits[%d].description", i), t.Description, vb)
	}

	c.Spellcasting.validate(vb)
	c.Actions.validate(vb)

	for i, r := range c.Reactions {
		errors.ValidateRequired(fmt.Sprintf("reactions[%d].name", i), r.Name, vb)
		errors.ValidateRequired(fmt.Sprintf("reactions[%d].description", i), r.Description, vb)
	}

	c.LegendaryActions.validate(vb)

	return vb.Build()
}

func (b *CreatureBase) validate(vb *errors.ValidationBuilder) {
	errors.ValidateRequired("name", b.Name, vb)
	errors.ValidateMaxLength("name", b.Name, 120, vb)
	errors.ValidateEnum("pronoun", string(b.Pronoun), Strings(Pronouns), vb)
	errors.ValidateEnum("type", string(b.Type), Strings(CreatureTypes), vb)
	errors.ValidateEnum("alignment", string(b.Alignment), Strings(Alignments), vb)
	errors.ValidateEnum("size", string(b.Size), Strings(Sizes), vb)

	if !contains(ChallengeRatings, b.ChallengeRating) {
		vb.Field("challengeRating", "must be one of 0, 0.125, 0.25, 0.5 or a whole number from 1 to 30")
	}

	for _, ability := range Abilities {
		errors.ValidateRange("abilityScores."+string(ability), b.AbilityScores.Get(ability), 1, 30, vb)
	}

	errors.ValidateMin("hitDiceAmount", b.HitDiceAmount, 1, vb)
	errors.ValidateRange("armorClass", b.ArmorClass, 1, 30, vb)
	errors.ValidateMin("telepathy", b.Telepathy, 0, vb)

	for mode, feet := range b.Speed {
		if !contains(MovementModes, mode) {
			vb.Fieldf("speed", "unknown movement mode %q", mode)
			continue
		}
		errors.ValidateMin("speed."+string(mode), feet, 0, vb)
	}
	for sense, feet := range b.Senses {
		if !contains(Senses, sense) {
			vb.Fieldf("senses", "unknown sense %q", sense)
			continue
		}
		errors.ValidateMin("senses."+string(sense), feet, 0, vb)
	}
	for damageType, modifier := range b.DamageModifiers {
		if !contains(ModifiableDamageTypes, damageType) {
			vb.Fieldf("damageModifiers", "unknown damage type %q", damageType)
			continue
		}
		errors.ValidateEnum("damageModifiers."+string(damageType), string(modifier), Strings(DamageModifiers), vb)
	}

	for i, a := range b.SavingThrows {
		errors.ValidateEnum(fmt.Sprintf("savingThrows[%d]", i), string(a), Strings(Abilities), vb)
	}
	for i, s := range b.Skills {
		errors.ValidateEnum(fmt.Sprintf("skills[%d]", i), string(s), Strings(Skills), vb)
	}
	for i, c := range b.ConditionImmunities {
		errors.ValidateEnum(fmt.Sprintf("conditionImmunities[%d]", i), string(c), Strings(Conditions), vb)
	}
	for i, l := range b.Languages {
		errors.ValidateRequired(fmt.Sprintf("languages[%d]", i), l, vb)
	}
}

func (s *Spellcasting) validate(vb *errors.ValidationBuilder) {
	if s == nil {
		return
	}

	errors.ValidateEnum("spellcasting.ability", string(s.Ability), Strings(Abilities), vb)
	for i, d := range s.Daily {
		errors.ValidateMin(fmt.Sprintf("spellcasting.daily[%d].uses", i), d.Uses, 1, vb)
	}
	for i, l := range s.Slots {
		errors.ValidateRange(fmt.Sprintf("spellcasting.slots[%d].level", i), l.Level, 1, 9, vb)
		errors.ValidateMin(fmt.Sprintf("spellcasting.slots[%d].slots", i), l.Slots, 1, vb)
	}
}

func validateDamage(field string, damage []Damage, vb *errors.ValidationBuilder) {
	for i, d := range damage {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		errors.ValidateMin(prefix+".diceCount", d.DiceCount, 1, vb)
		errors.ValidateEnum(prefix+".dieSize", fmt.Sprint(d.DieSize), []string{"4", "6", "8", "10", "12", "20"}, vb)
		errors.ValidateEnum(prefix+".damageType", string(d.DamageType), Strings(DamageTypes), vb)
	}
}

func validateRecharge(field string, recharge int, vb *errors.ValidationBuilder) {
	if recharge != 0 {
		errors.ValidateRange(field, recharge, 2, 6, vb)
	}
}

func (a *Actions) validate(vb *errors.ValidationBuilder) {
	for i, atk := range a.Attacks {
		prefix := fmt.Sprintf("actions.attacks[%d]", i)
		errors.ValidateRequired(prefix+".name", atk.Name, vb)
		errors.ValidateEnum(prefix+".kind", string(atk.Kind), Strings(AttackKinds), vb)
		errors.ValidateEnum(prefix+".ability", string(atk.Ability), Strings(Abilities), vb)
		errors.ValidateMin(prefix+".targets", atk.Targets, 1, vb)
		switch atk.Kind {
		case AttackKindMelee:
			errors.ValidateMin(prefix+".reach", atk.Reach, 5, vb)
		case AttackKindRanged:
			errors.ValidateMin(prefix+".normalRange", atk.NormalRange, 5, vb)
			if atk.LongRange != 0 && atk.LongRange < atk.NormalRange {
				vb.Field(prefix+".longRange", "must not be shorter than normalRange")
			}
		}
		if len(atk.Damage) == 0 {
			vb.Field(prefix+".damage", "must have at least one entry")
		}
		validateDamage(prefix+".damage", atk.Damage, vb)
	}

	for i, sta := range a.SavingThrowAttacks {
		prefix := fmt.Sprintf("actions.savingThrowAttacks[%d]", i)
		errors.ValidateRequired(prefix+".name", sta.Name, vb)
		errors.ValidateRequired(prefix+".description", sta.Description, vb)
		errors.ValidateEnum(prefix+".savingThrow", string(sta.SavingThrow), Strings(Abilities), vb)
		errors.ValidateEnum(prefix+".dcAbility", string(sta.DCAbility), Strings(Abilities), vb)
		validateDamage(prefix+".damage", sta.Damage, vb)
		validateRecharge(prefix+".recharge", sta.Recharge, vb)
	}

	for i, sa := range a.SpecialActions {
		prefix := fmt.Sprintf("actions.specialActions[%d]", i)
		errors.ValidateRequired(prefix+".name", sa.Name, vb)
		errors.ValidateRequired(prefix+".description", sa.Description, vb)
		validateRecharge(prefix+".recharge", sa.Recharge, vb)
	}
}

func (l *LegendaryActions) validate(vb *errors.ValidationBuilder) {
	if l == nil {
		return
	}

	errors.ValidateRange("legendaryActions.actionsPerRound", l.ActionsPerRound, 1, 5, vb)
	for i, a := range l.Actions {
		prefix := fmt.Sprintf("legendaryActions.actions[%d]", i)
		errors.ValidateRequired(prefix+".name", a.Name, vb)
		errors.ValidateRequired(prefix+".description", a.Description, vb)
		errors.ValidateRange(prefix+".cost", a.Cost, 1, 3, vb)
	}
}
