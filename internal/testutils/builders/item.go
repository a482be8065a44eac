package builders

import (
	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

// ItemBuilder provides a fluent interface for building test Item instances
type ItemBuilder struct {
	item *entities.Item
}

// NewItemBuilder creates a builder holding a valid +1 martial melee weapon
func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		item: &entities.Item{
			ItemBase: entities.ItemBase{
				Name:        "Tidecaller Trident",
				Type:        entities.ItemTypeWeapon,
				Subtype:     entities.ItemSubtypeMartialMelee,
				Rarity:      entities.RarityUncommon,
				Magical:     true,
				Bonus:       1,
				Attunement:  entities.Attunement{Required: true, Restriction: "by a druid"},
				Cost:        entities.Cost{Unit: entities.CoinGold, Amount: 500},
				Weight:      4,
				Description: "A trident of green bronze that hums near water.",
			},
			Descriptions: []entities.ItemDescription{
				{Label: "Tidecall", Text: "Once per day you can cast control water."},
			},
		},
	}
}

// WithName sets the item name
func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.item.Name = name
	return b
}

// WithType sets type and subtype
func (b *ItemBuilder) WithType(t entities.ItemType, subtype entities.ItemSubtype) *ItemBuilder {
	b.item.Type = t
	b.item.Subtype = subtype
	return b
}

// WithMagic sets the magical flag and bonus
func (b *ItemBuilder) WithMagic(magical bool, bonus int) *ItemBuilder {
	b.item.Magical = magical
	b.item.Bonus = bonus
	return b
}

// WithAttunement sets the attunement requirement
func (b *ItemBuilder) WithAttunement(required bool, restriction string) *ItemBuilder {
	b.item.Attunement = entities.Attunement{Required: required, Restriction: restriction}
	return b
}

// WithDescriptions replaces the labeled paragraphs
func (b *ItemBuilder) WithDescriptions(descriptions ...entities.ItemDescription) *ItemBuilder {
	b.item.Descriptions = descriptions
	return b
}

// Build returns the item
func (b *ItemBuilder) Build() *entities.Item {
	return b.item
}
