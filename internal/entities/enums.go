package entities

// Pronoun selects the pronouns used when a stat block refers to a creature
type Pronoun string

// Pronouns
const (
	PronounHe   Pronoun = "he"
	PronounShe  Pronoun = "she"
	PronounThey Pronoun = "they"
	PronounIt   Pronoun = "it"
)

// Pronouns lists every allowed Pronoun
var Pronouns = []Pronoun{PronounHe, PronounShe, PronounThey, PronounIt}

// CreatureType is the creature's category
type CreatureType string

// Creature types
const (
	CreatureTypeAberration  CreatureType = "aberration"
	CreatureTypeBeast       CreatureType = "beast"
	CreatureTypeCelestial   CreatureType = "celestial"
	CreatureTypeConstruct   CreatureType = "construct"
	CreatureTypeDragon      CreatureType = "dragon"
	CreatureTypeElemental   CreatureType = "elemental"
	CreatureTypeFey         CreatureType = "fey"
	CreatureTypeFiend       CreatureType = "fiend"
	CreatureTypeGiant       CreatureType = "giant"
	CreatureTypeHumanoid    CreatureType = "humanoid"
	CreatureTypeMonstrosity CreatureType = "monstrosity"
	CreatureTypeOoze        CreatureType = "ooze"
	CreatureTypePlant       CreatureType = "plant"
	CreatureTypeUndead      CreatureType = "undead"
)

// CreatureTypes lists every allowed CreatureType
var CreatureTypes = []CreatureType{
	CreatureTypeAberration, CreatureTypeBeast, CreatureTypeCelestial, CreatureTypeConstruct,
	CreatureTypeDragon, CreatureTypeElemental, CreatureTypeFey, CreatureTypeFiend,
	CreatureTypeGiant, CreatureTypeHumanoid, CreatureTypeMonstrosity, CreatureTypeOoze,
	CreatureTypePlant, CreatureTypeUndead,
}

// Alignment is the creature's moral and ethical outlook
type Alignment string

// Alignments
const (
	AlignmentLawfulGood     Alignment = "lawful good"
	AlignmentNeutralGood    Alignment = "neutral good"
	AlignmentChaoticGood    Alignment = "chaotic good"
	AlignmentLawfulNeutral  Alignment = "lawful neutral"
	AlignmentNeutral        Alignment = "neutral"
	AlignmentChaoticNeutral Alignment = "chaotic neutral"
	AlignmentLawfulEvil     Alignment = "lawful evil"
	AlignmentNeutralEvil    Alignment = "neutral evil"
	AlignmentChaoticEvil    Alignment = "chaotic evil"
	AlignmentUnaligned      Alignment = "unaligned"
	AlignmentAny            Alignment = "any alignment"
)

// Alignments lists every allowed Alignment
var Alignments = []Alignment{
	AlignmentLawfulGood, AlignmentNeutralGood, AlignmentChaoticGood,
	AlignmentLawfulNeutral, AlignmentNeutral, AlignmentChaoticNeutral,
	AlignmentLawfulEvil, AlignmentNeutralEvil, AlignmentChaoticEvil,
	AlignmentUnaligned, AlignmentAny,
}

// Size is the creature's size category
type Size string

// Sizes
const (
	SizeTiny       Size = "tiny"
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeHuge       Size = "huge"
	SizeGargantuan Size = "gargantuan"
)

// Sizes lists every allowed Size, smallest first
var Sizes = []Size{SizeTiny, SizeSmall, SizeMedium, SizeLarge, SizeHuge, SizeGargantuan}

// HitDie returns the hit die size for creatures of this size
func (s Size) HitDie() int {
	switch s {
	case SizeTiny:
		return 4
	case SizeSmall:
		return 6
	case SizeMedium:
		return 8
	case SizeLarge:
		return 10
	case SizeHuge:
		return 12
	case SizeGargantuan:
		return 20
	default:
		return 8
	}
}

// Ability is one of the six ability scores
type Ability string

// Abilities
const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities lists the abilities in stat block order
var Abilities = []Ability{
	AbilityStrength, AbilityDexterity, AbilityConstitution,
	AbilityIntelligence, AbilityWisdom, AbilityCharisma,
}

// Short returns the three-letter abbreviation, e.g. "Str"
func (a Ability) Short() string {
	if len(a) < 3 {
		return string(a)
	}
	return string(a[0]-'a'+'A') + string(a[1:3])
}

// Skill is a proficiency skill
type Skill string

// Skills
const (
	SkillAcrobatics     Skill = "acrobatics"
	SkillAnimalHandling Skill = "animal handling"
	SkillArcana         Skill = "arcana"
	SkillAthletics      Skill = "athletics"
	SkillDeception      Skill = "deception"
	SkillHistory        Skill = "history"
	SkillInsight        Skill = "insight"
	SkillIntimidation   Skill = "intimidation"
	SkillInvestigation  Skill = "investigation"
	SkillMedicine       Skill = "medicine"
	SkillNature         Skill = "nature"
	SkillPerception     Skill = "perception"
	SkillPerformance    Skill = "performance"
	SkillPersuasion     Skill = "persuasion"
	SkillReligion       Skill = "religion"
	SkillSleightOfHand  Skill = "sleight of hand"
	SkillStealth        Skill = "stealth"
	SkillSurvival       Skill = "survival"
)

// Skills lists every allowed Skill alphabetically
var Skills = []Skill{
	SkillAcrobatics, SkillAnimalHandling, SkillArcana, SkillAthletics, SkillDeception,
	SkillHistory, SkillInsight, SkillIntimidation, SkillInvestigation, SkillMedicine,
	SkillNature, SkillPerception, SkillPerformance, SkillPersuasion, SkillReligion,
	SkillSleightOfHand, SkillStealth, SkillSurvival,
}

var skillAbilities = map[Skill]Ability{
	SkillAcrobatics:     AbilityDexterity,
	SkillAnimalHandling: AbilityWisdom,
	SkillArcana:         AbilityIntelligence,
	SkillAthletics:      AbilityStrength,
	SkillDeception:      AbilityCharisma,
	SkillHistory:        AbilityIntelligence,
	SkillInsight:        AbilityWisdom,
	SkillIntimidation:   AbilityCharisma,
	SkillInvestigation:  AbilityIntelligence,
	SkillMedicine:       AbilityWisdom,
	SkillNature:         AbilityIntelligence,
	SkillPerception:     AbilityWisdom,
	SkillPerformance:    AbilityCharisma,
	SkillPersuasion:     AbilityCharisma,
	SkillReligion:       AbilityIntelligence,
	SkillSleightOfHand:  AbilityDexterity,
	SkillStealth:        AbilityDexterity,
	SkillSurvival:       AbilityWisdom,
}

// Ability returns the ability a skill check uses
func (s Skill) Ability() Ability {
	return skillAbilities[s]
}

// MovementMode is a kind of movement with its own speed
type MovementMode string

// Movement modes
const (
	MovementWalk   MovementMode = "walk"
	MovementFly    MovementMode = "fly"
	MovementSwim   MovementMode = "swim"
	MovementClimb  MovementMode = "climb"
	MovementBurrow MovementMode = "burrow"
)

// MovementModes lists modes in stat block order
var MovementModes = []MovementMode{MovementWalk, MovementBurrow, MovementClimb, MovementFly, MovementSwim}

// Sense is a special sense with a range
type Sense string

// Senses
const (
	SenseBlindsight  Sense = "blindsight"
	SenseDarkvision  Sense = "darkvision"
	SenseTremorsense Sense = "tremorsense"
	SenseTruesight   Sense = "truesight"
)

// Senses lists senses in stat block order
var Senses = []Sense{SenseBlindsight, SenseDarkvision, SenseTremorsense, SenseTruesight}

// DamageType is a kind of damage. DamageTypeNonmagicalPhysical stands for
// bludgeoning, piercing and slashing from nonmagical attacks.
type DamageType string

// Damage types
const (
	DamageTypeAcid               DamageType = "acid"
	DamageTypeBludgeoning        DamageType = "bludgeoning"
	DamageTypeCold               DamageType = "cold"
	DamageTypeFire               DamageType = "fire"
	DamageTypeForce              DamageType = "force"
	DamageTypeLightning          DamageType = "lightning"
	DamageTypeNecrotic           DamageType = "necrotic"
	DamageTypePiercing           DamageType = "piercing"
	DamageTypePoison             DamageType = "poison"
	DamageTypePsychic            DamageType = "psychic"
	DamageTypeRadiant            DamageType = "radiant"
	DamageTypeSlashing           DamageType = "slashing"
	DamageTypeThunder            DamageType = "thunder"
	DamageTypeNonmagicalPhysical DamageType = "nonmagical physical"
)

// DamageTypes lists the damage types that may appear on attacks
var DamageTypes = []DamageType{
	DamageTypeAcid, DamageTypeBludgeoning, DamageTypeCold, DamageTypeFire, DamageTypeForce,
	DamageTypeLightning, DamageTypeNecrotic, DamageTypePiercing, DamageTypePoison,
	DamageTypePsychic, DamageTypeRadiant, DamageTypeSlashing, DamageTypeThunder,
}

// ModifiableDamageTypes lists the keys allowed in a damage modifier map
var ModifiableDamageTypes = append(append([]DamageType{}, DamageTypes...), DamageTypeNonmagicalPhysical)

// IsPhysical reports whether the type is bludgeoning, piercing or slashing
func (d DamageType) IsPhysical() bool {
	return d == DamageTypeBludgeoning || d == DamageTypePiercing || d == DamageTypeSlashing
}

// DamageModifier is how a creature takes a damage type
type DamageModifier string

// Damage modifiers
const (
	DamageModifierNormal     DamageModifier = "normal"
	DamageModifierResistant  DamageModifier = "resistant"
	DamageModifierImmune     DamageModifier = "immune"
	DamageModifierVulnerable DamageModifier = "vulnerable"
)

// DamageModifiers lists every allowed DamageModifier
var DamageModifiers = []DamageModifier{
	DamageModifierNormal, DamageModifierResistant, DamageModifierImmune, DamageModifierVulnerable,
}

// Condition is a status condition a creature can be immune to
type Condition string

// Conditions
const (
	ConditionBlinded       Condition = "blinded"
	ConditionCharmed       Condition = "charmed"
	ConditionDeafened      Condition = "deafened"
	ConditionExhaustion    Condition = "exhaustion"
	ConditionFrightened    Condition = "frightened"
	ConditionGrappled      Condition = "grappled"
	ConditionIncapacitated Condition = "incapacitated"
	ConditionInvisible     Condition = "invisible"
	ConditionParalyzed     Condition = "paralyzed"
	ConditionPetrified     Condition = "petrified"
	ConditionPoisoned      Condition = "poisoned"
	ConditionProne         Condition = "prone"
	ConditionRestrained    Condition = "restrained"
	ConditionStunned       Condition = "stunned"
	ConditionUnconscious   Condition = "unconscious"
)

// Conditions lists every allowed Condition
var Conditions = []Condition{
	ConditionBlinded, ConditionCharmed, ConditionDeafened, ConditionExhaustion,
	ConditionFrightened, ConditionGrappled, ConditionIncapacitated, ConditionInvisible,
	ConditionParalyzed, ConditionPetrified, ConditionPoisoned, ConditionProne,
	ConditionRestrained, ConditionStunned, ConditionUnconscious,
}

// AttackKind distinguishes melee from ranged attacks
type AttackKind string

// Attack kinds
const (
	AttackKindMelee  AttackKind = "melee"
	AttackKindRanged AttackKind = "ranged"
)

// AttackKinds lists every allowed AttackKind
var AttackKinds = []AttackKind{AttackKindMelee, AttackKindRanged}

// ChallengeRatings lists every allowed challenge rating
var ChallengeRatings = []float64{
	0, 0.125, 0.25, 0.5,
	1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
	11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
	21, 22, 23, 24, 25, 26, 27, 28, 29, 30,
}

// ItemType is the broad category of an item
type ItemType string

// Item types
const (
	ItemTypeWeapon          ItemType = "weapon"
	ItemTypeArmor           ItemType = "armor"
	ItemTypePotion          ItemType = "potion"
	ItemTypeRing            ItemType = "ring"
	ItemTypeRod             ItemType = "rod"
	ItemTypeScroll          ItemType = "scroll"
	ItemTypeStaff           ItemType = "staff"
	ItemTypeWand            ItemType = "wand"
	ItemTypeWondrousItem    ItemType = "wondrous item"
	ItemTypeAdventuringGear ItemType = "adventuring gear"
	ItemTypeTool            ItemType = "tool"
)

// ItemTypes lists every allowed ItemType
var ItemTypes = []ItemType{
	ItemTypeWeapon, ItemTypeArmor, ItemTypePotion, ItemTypeRing, ItemTypeRod, ItemTypeScroll,
	ItemTypeStaff, ItemTypeWand, ItemTypeWondrousItem, ItemTypeAdventuringGear, ItemTypeTool,
}

// ItemSubtype narrows weapons and armor; other types use ItemSubtypeNone
type ItemSubtype string

// Item subtypes
const (
	ItemSubtypeNone          ItemSubtype = "none"
	ItemSubtypeSimpleMelee   ItemSubtype = "simple melee"
	ItemSubtypeSimpleRanged  ItemSubtype = "simple ranged"
	ItemSubtypeMartialMelee  ItemSubtype = "martial melee"
	ItemSubtypeMartialRanged ItemSubtype = "martial ranged"
	ItemSubtypeLightArmor    ItemSubtype = "light"
	ItemSubtypeMediumArmor   ItemSubtype = "medium"
	ItemSubtypeHeavyArmor    ItemSubtype = "heavy"
	ItemSubtypeShield        ItemSubtype = "shield"
)

// ItemSubtypes lists every subtype across all item types
var ItemSubtypes = []ItemSubtype{
	ItemSubtypeNone,
	ItemSubtypeSimpleMelee, ItemSubtypeSimpleRanged, ItemSubtypeMartialMelee, ItemSubtypeMartialRanged,
	ItemSubtypeLightArmor, ItemSubtypeMediumArmor, ItemSubtypeHeavyArmor, ItemSubtypeShield,
}

// Subtypes returns the subtypes allowed for an item type
func (t ItemType) Subtypes() []ItemSubtype {
	switch t {
	case ItemTypeWeapon:
		return []ItemSubtype{ItemSubtypeSimpleMelee, ItemSubtypeSimpleRanged, ItemSubtypeMartialMelee, ItemSubtypeMartialRanged}
	case ItemTypeArmor:
		return []ItemSubtype{ItemSubtypeLightArmor, ItemSubtypeMediumArmor, ItemSubtypeHeavyArmor, ItemSubtypeShield}
	default:
		return []ItemSubtype{ItemSubtypeNone}
	}
}

// Rarity is how rare an item is
type Rarity string

// Rarities
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityVeryRare  Rarity = "very rare"
	RarityLegendary Rarity = "legendary"
	RarityArtifact  Rarity = "artifact"
)

// Rarities lists every allowed Rarity
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityVeryRare, RarityLegendary, RarityArtifact}

// CoinUnit is a currency denomination
type CoinUnit string

// Coin units
const (
	CoinCopper   CoinUnit = "cp"
	CoinSilver   CoinUnit = "sp"
	CoinElectrum CoinUnit = "ep"
	CoinGold     CoinUnit = "gp"
	CoinPlatinum CoinUnit = "pp"
)

// CoinUnits lists every allowed CoinUnit
var CoinUnits = []CoinUnit{CoinCopper, CoinSilver, CoinElectrum, CoinGold, CoinPlatinum}

// Strings converts a list of string-backed enum values to plain strings
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func contains[T comparable](values []T, v T) bool {
	for _, a := range values {
		if a == v {
			return true
		}
	}
	return false
}
