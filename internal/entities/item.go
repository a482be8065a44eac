package entities

import (
	"fmt"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

// Attunement says whether and by whom an item must be attuned
type Attunement struct {
	Required    bool   `json:"required"`
	Restriction string `json:"restriction,omitempty"`
}

// Cost is an item's price
type Cost struct {
	Unit   CoinUnit `json:"unit"`
	Amount int      `json:"amount"`
}

// ItemBase is the identity and mechanics of an item
type ItemBase struct {
	Name        string      `json:"name"`
	Type        ItemType    `json:"type"`
	Subtype     ItemSubtype `json:"subtype"`
	Rarity      Rarity      `json:"rarity"`
	Magical     bool        `json:"magical"`
	Bonus       int         `json:"bonus"`
	Attunement  Attunement  `json:"attunement"`
	Cost        Cost        `json:"cost"`
	Weight      float64     `json:"weight"`
	Description string      `json:"description"`
}

// ItemDescription is a labeled paragraph, e.g. "Curse" or "Sentience"
type ItemDescription struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Item is a complete, generated item
type Item struct {
	ItemBase
	Descriptions []ItemDescription `json:"descriptions"`
}

// Validate checks every declarative rule of the item model
func (i *Item) Validate() error {
	if i == nil {
		return errors.InvalidArgument("item is required")
	}

	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", i.Name, vb)
	errors.ValidateMaxLength("name", i.Name, 120, vb)
	errors.ValidateEnum("type", string(i.Type), Strings(ItemTypes), vb)
	errors.ValidateEnum("rarity", string(i.Rarity), Strings(Rarities), vb)
	if contains(ItemTypes, i.Type) {
		errors.ValidateEnum("subtype", string(i.Subtype), Strings(i.Type.Subtypes()), vb)
	}

	errors.ValidateRange("bonus", i.Bonus, 0, 3, vb)
	if !i.Magical && i.Bonus != 0 {
		vb.Field("bonus", "must be 0 for a mundane item")
	}
	if !i.Attunement.Required && i.Attunement.Restriction != "" {
		vb.Field("attunement.restriction", "only allowed when attunement is required")
	}

	errors.ValidateEnum("cost.unit", string(i.Cost.Unit), Strings(CoinUnits), vb)
	errors.ValidateMin("cost.amount", i.Cost.Amount, 0, vb)
	if i.Weight < 0 {
		vb.Field("weight", "must be at least 0")
	}

	for n, d := range i.Descriptions {
		errors.ValidateRequired(fmt.Sprintf("descriptions[%d].label", n), d.Label, vb)
		errors.ValidateRequired(fmt.Sprintf("descriptions[%d].text", n), d.Text, vb)
	}

	return vb.Build()
}
