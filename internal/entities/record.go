package entities

import (
	"strconv"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Entity type names used for storage keys
const (
	EntityTypeCreature = "creature"
	EntityTypeItem     = "item"
)

// RecordMeta is the ownership and version data shared by stored records
type RecordMeta struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetID returns the record id as a string
func (m *RecordMeta) GetID() string {
	return strconv.FormatInt(m.ID, 10)
}

// Metadata exposes the shared fields to generic storage code
func (m *RecordMeta) Metadata() *RecordMeta {
	return m
}

// CreatureRecord is a stored creature with its ownership and version
type CreatureRecord struct {
	RecordMeta
	Creature *Creature `json:"creature"`
}

// GetType returns the entity type
func (r *CreatureRecord) GetType() string {
	return EntityTypeCreature
}

// ItemRecord is a stored item with its ownership and version
type ItemRecord struct {
	RecordMeta
	Item *Item `json:"item"`
}

// GetType returns the entity type
func (r *ItemRecord) GetType() string {
	return EntityTypeItem
}

var (
	_ core.Entity = (*CreatureRecord)(nil)
	_ core.Entity = (*ItemRecord)(nil)
)
