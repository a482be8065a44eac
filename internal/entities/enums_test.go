package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

func TestHitDie(t *testing.T) {
	expected := map[entities.Size]int{
		entities.SizeTiny:       4,
		entities.SizeSmall:      6,
		entities.SizeMedium:     8,
		entities.SizeLarge:      10,
		entities.SizeHuge:       12,
		entities.SizeGargantuan: 20,
	}
	for size, die := range expected {
		assert.Equal(t, die, size.HitDie(), string(size))
	}
}

func TestAbilityShort(t *testing.T) {
	assert.Equal(t, "Str", entities.AbilityStrength.Short())
	assert.Equal(t, "Cha", entities.AbilityCharisma.Short())
}

func TestEverySkillHasAnAbility(t *testing.T) {
	assert.Len(t, entities.Skills, 18)
	for _, skill := range entities.Skills {
		assert.NotEmpty(t, skill.Ability(), string(skill))
	}
}

func TestEnumTableSizes(t *testing.T) {
	assert.Len(t, entities.Conditions, 15)
	assert.Len(t, entities.DamageTypes, 13)
	assert.Len(t, entities.ModifiableDamageTypes, 14)
	assert.Len(t, entities.ChallengeRatings, 34)
	assert.Len(t, entities.Alignments, 11)
}

func TestSubtypes(t *testing.T) {
	assert.Len(t, entities.ItemTypeWeapon.Subtypes(), 4)
	assert.Len(t, entities.ItemTypeArmor.Subtypes(), 4)
	assert.Equal(t, []entities.ItemSubtype{entities.ItemSubtypeNone}, entities.ItemTypeRing.Subtypes())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"melee", "ranged"}, entities.Strings(entities.AttackKinds))
}

func TestRecordsAreEntities(t *testing.T) {
	c := &entities.CreatureRecord{RecordMeta: entities.RecordMeta{ID: 42}}
	assert.Equal(t, "42", c.GetID())
	assert.Equal(t, entities.EntityTypeCreature, c.GetType())

	i := &entities.ItemRecord{RecordMeta: entities.RecordMeta{ID: 7}}
	assert.Equal(t, "7", i.GetID())
	assert.Equal(t, entities.EntityTypeItem, i.GetType())
}
