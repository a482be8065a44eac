package statblock

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

var minorWords = map[string]bool{"of": true, "and": true, "the": true, "a": true, "an": true, "in": true, "from": true}

// Title capitalises every word except minor words after the first
func Title(s string) string {
	// Casers hold state, so each call gets its own
	caser := cases.Title(language.English)
	words := strings.Fields(s)
	for i, w := range words {
		if i > 0 && minorWords[strings.ToLower(w)] {
			words[i] = strings.ToLower(w)
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// Capitalize upper-cases the first letter only
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

type pronounForms struct {
	subject    string
	possessive string
	plural     bool
}

var pronouns = map[entities.Pronoun]pronounForms{
	entities.PronounHe:   {"he", "his", false},
	entities.PronounShe:  {"she", "her", false},
	entities.PronounThey: {"they", "their", true},
	entities.PronounIt:   {"it", "its", false},
}

// verb conjugates a present tense verb for the pronoun, "regains" or "regain"
func (f pronounForms) verb(v string) string {
	if f.plural {
		return v
	}
	return v + "s"
}

func formsFor(p entities.Pronoun) pronounForms {
	if f, ok := pronouns[p]; ok {
		return f
	}
	return pronouns[entities.PronounIt]
}

// referTo is how prose names the creature, "the bog warden"
func referTo(c *entities.Creature) string {
	return "the " + strings.ToLower(c.Name)
}

var numberWords = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

func countWord(n int) string {
	if n >= 0 && n < len(numberWords) {
		return numberWords[n]
	}
	return fmt.Sprint(n)
}

// Subtitle renders "Medium humanoid, neutral"
func Subtitle(c *entities.Creature) string {
	return fmt.Sprintf("%s %s, %s", Capitalize(string(c.Size)), c.Type, c.Alignment)
}

// ArmorClass renders "15 (natural armor)"
func ArmorClass(c *entities.Creature) string {
	if c.ArmorType == "" {
		return fmt.Sprint(c.ArmorClass)
	}
	return fmt.Sprintf("%d (%s)", c.ArmorClass, c.ArmorType)
}

// Speed renders "30 ft., fly 60 ft. (hover), swim 30 ft."; walking speed
// always comes first and has no label.
func Speed(c *entities.Creature) string {
	parts := []string{fmt.Sprintf("%d ft.", c.Speed[entities.MovementWalk])}
	for _, mode := range entities.MovementModes {
		if mode == entities.MovementWalk {
			continue
		}
		v, ok := c.Speed[mode]
		if !ok || v <= 0 {
			continue
		}
		part := fmt.Sprintf("%s %d ft.", mode, v)
		if mode == entities.MovementFly && c.Hover {
			part += " (hover)"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// SavingThrows renders "Str +6, Con +5" in ability order
func SavingThrows(c *entities.Creature) string {
	var parts []string
	for _, a := range entities.Abilities {
		if !slices.Contains(c.SavingThrows, a) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", a.Short(), FormatModifier(AttackBonus(c, a))))
	}
	return strings.Join(parts, ", ")
}

// Skills renders "Perception +4, Stealth +4" alphabetically
func Skills(c *entities.Creature) string {
	var parts []string
	for _, s := range entities.Skills {
		if !slices.Contains(c.Skills, s) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", Title(string(s)), FormatModifier(skillBonus(c, s))))
	}
	return strings.Join(parts, ", ")
}

// Senses renders "darkvision 60 ft., passive Perception 14"
func Senses(c *entities.Creature) string {
	var parts []string
	for _, s := range entities.Senses {
		if v := c.Senses[s]; v > 0 {
			parts = append(parts, fmt.Sprintf("%s %d ft.", s, v))
		}
	}
	parts = append(parts, fmt.Sprintf("passive Perception %d", PassivePerception(c)))
	return strings.Join(parts, ", ")
}

// Languages renders "Common, Sylvan, telepathy 120 ft." or "-" when there are none
func Languages(c *entities.Creature) string {
	parts := append([]string(nil), c.Languages...)
	if c.Telepathy > 0 {
		parts = append(parts, fmt.Sprintf("telepathy %d ft.", c.Telepathy))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// ConditionImmunities renders "charmed, frightened"
func ConditionImmunities(c *entities.Creature) string {
	var parts []string
	for _, cond := range entities.Conditions {
		if slices.Contains(c.ConditionImmunities, cond) {
			parts = append(parts, string(cond))
		}
	}
	return strings.Join(parts, ", ")
}

const nonmagicalPhrase = "bludgeoning, piercing, and slashing from nonmagical attacks"

// DamageModifierLines holds the three grouped damage modifier sentences
type DamageModifierLines struct {
	Vulnerabilities string `json:"vulnerabilities,omitempty"`
	Resistances     string `json:"resistances,omitempty"`
	Immunities      string `json:"immunities,omitempty"`
}

// DamageModifiers groups a creature's damage modifiers. The nonmagical
// physical pseudo-type renders as its own clause unless bludgeoning,
// piercing and slashing are all already listed in the same group.
func DamageModifiers(c *entities.Creature) DamageModifierLines {
	return DamageModifierLines{
		Vulnerabilities: damageModifierSentence(c.DamageModifiers, entities.DamageModifierVulnerable),
		Resistances:     damageModifierSentence(c.DamageModifiers, entities.DamageModifierResistant),
		Immunities:      damageModifierSentence(c.DamageModifiers, entities.DamageModifierImmune),
	}
}

func damageModifierSentence(mods map[entities.DamageType]entities.DamageModifier, want entities.DamageModifier) string {
	var types []string
	physical := 0
	for _, t := range entities.DamageTypes {
		if mods[t] != want {
			continue
		}
		if t.IsPhysical() {
			physical++
		}
		types = append(types, string(t))
	}

	clauses := make([]string, 0, 2)
	if len(types) > 0 {
		clauses = append(clauses, strings.Join(types, ", "))
	}
	if mods[entities.DamageTypeNonmagicalPhysical] == want && physical < 3 {
		clauses = append(clauses, nonmagicalPhrase)
	}
	return strings.Join(clauses, "; ")
}

func recharge(r int) string {
	switch {
	case r <= 0:
		return ""
	case r == 6:
		return " (Recharge 6)"
	default:
		return fmt.Sprintf(" (Recharge %d-6)", r)
	}
}

func damageText(damage []entities.Damage, modifier int) string {
	parts := make([]string, 0, len(damage))
	for i, d := range damage {
		mod := 0
		if i == 0 {
			mod = modifier
		}
		avg := max(AverageDice(d.DiceCount, d.DieSize)+mod, 1)
		parts = append(parts, fmt.Sprintf("%d (%s) %s damage", avg, DiceExpression(d.DiceCount, d.DieSize, mod), d.DamageType))
	}
	return strings.Join(parts, " plus ")
}

// AttackText renders the full attack line after the name
func AttackText(c *entities.Creature, a entities.Attack) string {
	var b strings.Builder
	mod := AbilityModifier(c.AbilityScores.Get(a.Ability))

	if a.Kind == entities.AttackKindRanged {
		b.WriteString("Ranged Weapon Attack: ")
	} else {
		b.WriteString("Melee Weapon Attack: ")
	}
	fmt.Fprintf(&b, "%s to hit, ", FormatModifier(AttackBonus(c, a.Ability)))

	if a.Kind == entities.AttackKindRanged {
		if a.LongRange > 0 {
			fmt.Fprintf(&b, "range %d/%d ft., ", a.NormalRange, a.LongRange)
		} else {
			fmt.Fprintf(&b, "range %d ft., ", a.NormalRange)
		}
	} else {
		fmt.Fprintf(&b, "reach %d ft., ", a.Reach)
	}

	targets := max(a.Targets, 1)
	if targets == 1 {
		b.WriteString("one target.")
	} else {
		fmt.Fprintf(&b, "up to %s targets.", countWord(targets))
	}

	if len(a.Damage) > 0 {
		fmt.Fprintf(&b, " Hit: %s.", damageText(a.Damage, mod))
	}
	return b.String()
}

// SavingThrowAttackText renders the description followed by the save and its damage
func SavingThrowAttackText(c *entities.Creature, a entities.SavingThrowAttack) string {
	var b strings.Builder
	if desc := strings.TrimSpace(a.Description); desc != "" {
		b.WriteString(desc)
		if !strings.HasSuffix(desc, ".") {
			b.WriteString(".")
		}
		b.WriteString(" ")
	}

	fmt.Fprintf(&b, "DC %d %s saving throw", SaveDC(c, a.DCAbility), Title(string(a.SavingThrow)))
	if len(a.Damage) == 0 {
		b.WriteString(".")
		return b.String()
	}

	fmt.Fprintf(&b, ": %s on a failed save", damageText(a.Damage, 0))
	if a.HalfDamageOnSuccess {
		b.WriteString(", or half as much damage on a successful one")
	}
	b.WriteString(".")
	return b.String()
}

func ordinalLevel(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// SpellcastingHeader renders the spellcasting ability sentence
func SpellcastingHeader(c *entities.Creature) string {
	s := c.Spellcasting
	forms := formsFor(c.Pronoun)
	return fmt.Sprintf("%s's spellcasting ability is %s (spell save DC %d, %s to hit with spell attacks). %s can cast the following spells:",
		Capitalize(referTo(c)), Title(string(s.Ability)), SaveDC(c, s.Ability),
		FormatModifier(AttackBonus(c, s.Ability)), Capitalize(forms.subject))
}

// SpellcastingLines renders "At will: ...", "3/day each: ...", "1st level (4 slots): ..."
func SpellcastingLines(s *entities.Spellcasting) []string {
	var lines []string
	if len(s.AtWill) > 0 {
		lines = append(lines, "At will: "+strings.Join(s.AtWill, ", "))
	}
	for _, d := range s.Daily {
		label := fmt.Sprintf("%d/day", d.Uses)
		if len(d.Spells) > 1 {
			label += " each"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, strings.Join(d.Spells, ", ")))
	}

	slots := slices.Clone(s.Slots)
	slices.SortStableFunc(slots, func(a, b entities.SpellSlotLevel) int { return a.Level - b.Level })
	for _, l := range slots {
		noun := "slots"
		if l.Slots == 1 {
			noun = "slot"
		}
		lines = append(lines, fmt.Sprintf("%s level (%d %s): %s", ordinalLevel(l.Level), l.Slots, noun, strings.Join(l.Spells, ", ")))
	}
	return lines
}

// LegendaryHeader renders the legendary actions preamble
func LegendaryHeader(c *entities.Creature) string {
	forms := formsFor(c.Pronoun)
	return fmt.Sprintf("%s can take %d legendary actions, choosing from the options below. "+
		"Only one legendary action option can be used at a time and only at the end of another creature's turn. "+
		"%s %s spent legendary actions at the start of %s turn.",
		Capitalize(referTo(c)), c.LegendaryActions.ActionsPerRound, Capitalize(forms.subject), forms.verb("regain"), forms.possessive)
}

// LegendaryActionName appends the cost when it is above one
func LegendaryActionName(a entities.LegendaryAction) string {
	if a.Cost > 1 {
		return fmt.Sprintf("%s (Costs %d Actions)", a.Name, a.Cost)
	}
	return a.Name
}
