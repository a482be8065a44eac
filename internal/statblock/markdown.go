package statblock

import (
	"fmt"
	"strings"
)

func writeProperty(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "**%s** %s  \n", label, value)
}

func writeEntries(b *strings.Builder, entries []Entry) {
	for _, e := range entries {
		fmt.Fprintf(b, "***%s.*** %s\n\n", e.Name, e.Text)
	}
}

// Markdown renders the creature stat block
func (c *CreatureBlock) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n*%s*\n\n---\n\n", c.Name, c.Subtitle)
	writeProperty(&b, "Armor Class", c.ArmorClass)
	writeProperty(&b, "Hit Points", c.HitPoints)
	writeProperty(&b, "Speed", c.Speed)
	b.WriteString("\n---\n\n")

	heads := make([]string, len(c.Abilities))
	aligns := make([]string, len(c.Abilities))
	cells := make([]string, len(c.Abilities))
	for i, a := range c.Abilities {
		heads[i] = strings.ToUpper(a.Ability)
		aligns[i] = ":---:"
		cells[i] = fmt.Sprintf("%d (%s)", a.Score, a.Modifier)
	}
	fmt.Fprintf(&b, "| %s |\n| %s |\n| %s |\n\n---\n\n",
		strings.Join(heads, " | "), strings.Join(aligns, " | "), strings.Join(cells, " | "))

	writeProperty(&b, "Saving Throws", c.SavingThrows)
	writeProperty(&b, "Skills", c.Skills)
	writeProperty(&b, "Damage Vulnerabilities", c.DamageModifiers.Vulnerabilities)
	writeProperty(&b, "Damage Resistances", c.DamageModifiers.Resistances)
	writeProperty(&b, "Damage Immunities", c.DamageModifiers.Immunities)
	writeProperty(&b, "Condition Immunities", c.ConditionImmunities)
	writeProperty(&b, "Senses", c.Senses)
	writeProperty(&b, "Languages", c.Languages)
	writeProperty(&b, "Challenge", c.Challenge)
	writeProperty(&b, "Proficiency Bonus", c.ProficiencyBonus)
	b.WriteString("\n---\n\n")

	writeEntries(&b, c.Traits)
	if c.Spellcasting != nil {
		fmt.Fprintf(&b, "***Spellcasting.*** %s\n\n", c.Spellcasting.Header)
		for _, line := range c.Spellcasting.Lines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Actions\n\n")
	writeEntries(&b, c.Actions)

	if len(c.Reactions) > 0 {
		b.WriteString("### Reactions\n\n")
		writeEntries(&b, c.Reactions)
	}

	if c.Legendary != nil {
		fmt.Fprintf(&b, "### Legendary Actions\n\n%s\n\n", c.Legendary.Header)
		writeEntries(&b, c.Legendary.Actions)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Markdown renders the item stat block
func (i *ItemBlock) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n*%s*\n\n", i.Name, i.Subtitle)
	writeProperty(&b, "Bonus", i.Bonus)
	writeProperty(&b, "Cost", i.Cost)
	writeProperty(&b, "Weight", i.Weight)
	b.WriteString("\n")
	if i.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", i.Description)
	}
	writeEntries(&b, i.Sections)

	return strings.TrimRight(b.String(), "\n") + "\n"
}
