package creature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/testutils/builders"
)

func TestMergeReplacesScalarSections(t *testing.T) {
	first := &entities.CreatureBase{Name: "Bog Warden"}
	second := &entities.CreatureBase{Name: "Elder Bog Warden"}

	out := merge(partial{base: first}, partial{base: second})
	assert.Same(t, second, out.base)

	out = merge(out, partial{traits: []entities.Trait{{Name: "Amphibious"}}})
	assert.Same(t, second, out.base, "a partial without base stats keeps the previous ones")
}

func TestMergeDeduplicatesListsKeepingLast(t *testing.T) {
	a := partial{traits: []entities.Trait{
		{Name: "Amphibious", Description: "v1"},
		{Name: "Keen Smell", Description: "smell"},
	}}
	b := partial{traits: []entities.Trait{{Name: "amphibious ", Description: "v2"}}}

	out := merge(a, b)
	require.Len(t, out.traits, 2)
	assert.Equal(t, "Keen Smell", out.traits[0].Name)
	assert.Equal(t, "v2", out.traits[1].Description)
	assert.Equal(t, "v1", a.traits[0].Description, "inputs are not modified")
}

func TestMergeNameMatchingIgnoresCaseAndSpacing(t *testing.T) {
	testCases := []struct {
		name  string
		a, b  string
		dedup bool
	}{
		{"same name", "Claw", "Claw", true},
		{"different case", "Claw", "claw", true},
		{"surrounding spaces", "Claw", "  CLAW ", true},
		{"different names", "Claw", "Claws", false},
		{"inner spacing differs", "Gaff Hook", "GaffHook", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := partial{actions: &entities.Actions{Attacks: []entities.Attack{{Name: tc.a, Targets: 1}}}}
			b := partial{actions: &entities.Actions{Attacks: []entities.Attack{{Name: tc.b, Targets: 2}}}}

			out := merge(a, b)
			require.NotNil(t, out.actions)
			if tc.dedup {
				require.Len(t, out.actions.Attacks, 1)
				assert.Equal(t, tc.b, out.actions.Attacks[0].Name, "the later entry wins, with its own spelling")
				assert.Equal(t, 2, out.actions.Attacks[0].Targets)
				return
			}
			assert.Len(t, out.actions.Attacks, 2)
		})
	}
}

func TestMergeActions(t *testing.T) {
	bite := entities.Attack{Name: "Bite", Targets: 1}
	claw := entities.Attack{Name: "Claw", Targets: 1}
	biteV2 := entities.Attack{Name: "Bite", Targets: 2}

	a := partial{actions: &entities.Actions{Multiattack: "Bite and claw.", Attacks: []entities.Attack{bite, claw}}}
	b := partial{actions: &entities.Actions{
		Attacks:        []entities.Attack{biteV2},
		SpecialActions: []entities.SpecialAction{{Name: "Shriek", Description: "Loud."}},
	}}

	out := merge(a, b)
	require.NotNil(t, out.actions)
	assert.Equal(t, "Bite and claw.", out.actions.Multiattack)
	assert.Equal(t, []entities.Attack{claw, biteV2}, out.actions.Attacks)
	assert.Len(t, out.actions.SpecialActions, 1)

	out = merge(out, partial{actions: &entities.Actions{Multiattack: "Two bites."}})
	assert.Equal(t, "Two bites.", out.actions.Multiattack)
	assert.Len(t, out.actions.Attacks, 2)
}

func TestMergeLegendaryActions(t *testing.T) {
	a := partial{legendary: &entities.LegendaryActions{
		ActionsPerRound: 3,
		Actions:         []entities.LegendaryAction{{Name: "Detect", Cost: 1}},
	}}
	b := partial{legendary: &entities.LegendaryActions{
		Actions: []entities.LegendaryAction{{Name: "Wing Attack", Cost: 2}},
	}}

	out := merge(a, b)
	assert.Equal(t, 3, out.legendary.ActionsPerRound)
	assert.Len(t, out.legendary.Actions, 2)
}

func TestFinalize(t *testing.T) {
	c := builders.NewCreatureBuilder().Build()

	got, err := finalize(seedFrom(c))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestFinalizeRequiresBaseStats(t *testing.T) {
	_, err := finalize(partial{traits: []entities.Trait{{Name: "Amphibious", Description: "x"}}})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), ToolSetBaseStats)
}

func TestFinalizeFillsEmptySections(t *testing.T) {
	base := builders.NewCreatureBuilder().Build().CreatureBase
	base.Speed = nil
	base.Languages = nil

	got, err := finalize(partial{base: &base})
	require.NoError(t, err)
	assert.NotNil(t, got.Speed)
	assert.NotNil(t, got.Languages)
	assert.NotNil(t, got.Traits)
	assert.NotNil(t, got.Actions.Attacks)
	assert.Nil(t, got.Reactions)
}

func TestFinalizeRejectsInvalidCreature(t *testing.T) {
	base := builders.NewCreatureBuilder().Build().CreatureBase
	base.ChallengeRating = 0.3

	_, err := finalize(partial{base: &base})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestBuildToolset(t *testing.T) {
	ts, err := buildToolset(true)
	require.NoError(t, err)

	names := make([]string, 0, len(ts.Tools()))
	for _, tool := range ts.Tools() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{
		ToolSetBaseStats, ToolSetTraits, ToolSetSpellcasting,
		ToolSetAttacks, ToolSetLegendaryActions, ToolSetReactions,
	}, names)
	assert.Len(t, ts.Groups(), 3)

	base := ts.Tools()[0].Parameters
	assert.Contains(t, base.Properties["size"].Enum, "gargantuan")
	assert.Contains(t, base.Properties["damageModifiers"].Properties, "nonmagical physical")
	assert.Equal(t, 30.0, *base.Properties["abilityScores"].Properties["charisma"].Maximum)
}
