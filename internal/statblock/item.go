package statblock

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

// ItemBlock is every display value of an item stat block
type ItemBlock struct {
	Name        string  `json:"name"`
	Subtitle    string  `json:"subtitle"`
	Bonus       string  `json:"bonus,omitempty"`
	Cost        string  `json:"cost"`
	Weight      string  `json:"weight"`
	Description string  `json:"description"`
	Sections    []Entry `json:"sections"`
}

// ItemSubtitle renders "Weapon (martial melee), uncommon (requires attunement by a druid)"
func ItemSubtitle(i *entities.Item) string {
	s := Capitalize(string(i.Type))
	if i.Subtype != "" && i.Subtype != entities.ItemSubtypeNone {
		s += fmt.Sprintf(" (%s)", i.Subtype)
	}
	s += ", " + string(i.Rarity)
	if i.Attunement.Required {
		if i.Attunement.Restriction != "" {
			s += fmt.Sprintf(" (requires attunement %s)", i.Attunement.Restriction)
		} else {
			s += " (requires attunement)"
		}
	}
	return s
}

// ItemCost renders "1,500 gp"
func ItemCost(i *entities.Item) string {
	return numbers.Sprintf("%d %s", i.Cost.Amount, i.Cost.Unit)
}

// ItemWeight renders "4 lb." or "-" for weightless items
func ItemWeight(i *entities.Item) string {
	if i.Weight <= 0 {
		return "-"
	}
	return strconv.FormatFloat(i.Weight, 'f', -1, 64) + " lb."
}

// NewItemBlock derives the stat block of a validated item
func NewItemBlock(i *entities.Item) *ItemBlock {
	b := &ItemBlock{
		Name:        i.Name,
		Subtitle:    ItemSubtitle(i),
		Cost:        ItemCost(i),
		Weight:      ItemWeight(i),
		Description: i.Description,
		Sections:    make([]Entry, 0, len(i.Descriptions)),
	}
	if i.Magical && i.Bonus > 0 {
		b.Bonus = FormatModifier(i.Bonus)
	}
	for _, d := range i.Descriptions {
		b.Sections = append(b.Sections, Entry{Name: d.Label, Text: d.Text})
	}
	return b
}
