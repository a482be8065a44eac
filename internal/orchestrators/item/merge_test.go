package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/testutils/builders"
)

func TestMergeDescriptionsKeepLastPerLabel(t *testing.T) {
	a := partial{descriptions: []entities.ItemDescription{
		{Label: "Tidecall", Text: "old"},
		{Label: "Curse", Text: "bad luck"},
	}}
	b := partial{descriptions: []entities.ItemDescription{{Label: "tidecall ", Text: "new"}}}

	out := merge(a, b)

	assert.Equal(t, []entities.ItemDescription{
		{Label: "Curse", Text: "bad luck"},
		{Label: "tidecall ", Text: "new"},
	}, out.descriptions)
	assert.Len(t, a.descriptions, 2)
	assert.Nil(t, out.base)
}

func TestMergeReplacesBase(t *testing.T) {
	first := builders.NewItemBuilder().Build().ItemBase
	second := first
	second.Name = "Stormcaller Trident"

	out := merge(partial{base: &first}, partial{base: &second})
	assert.Equal(t, "Stormcaller Trident", out.base.Name)
	assert.Equal(t, "Tidecaller Trident", first.Name)
}

func TestFinalize(t *testing.T) {
	want := builders.NewItemBuilder().Build()

	got, err := finalize(seedFrom(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFinalizeRequiresBase(t *testing.T) {
	_, err := finalize(partial{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), ToolSetItemBase)
}

func TestFinalizeFillsDescriptions(t *testing.T) {
	base := builders.NewItemBuilder().Build().ItemBase

	got, err := finalize(partial{base: &base})
	require.NoError(t, err)
	assert.NotNil(t, got.Descriptions)
	assert.Empty(t, got.Descriptions)
}

func TestFinalizeRejectsMundaneBonus(t *testing.T) {
	base := builders.NewItemBuilder().WithMagic(false, 2).Build().ItemBase

	_, err := finalize(partial{base: &base})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bonus")
}

func TestBuildToolset(t *testing.T) {
	ts, err := buildToolset(true)
	require.NoError(t, err)

	tools := ts.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, ToolSetItemBase, tools[0].Name)
	assert.Equal(t, ToolSetItemDescriptions, tools[1].Name)
	assert.Len(t, ts.Groups(), 2)

	rarity := tools[0].Parameters.Properties["rarity"]
	require.NotNil(t, rarity)
	assert.Contains(t, rarity.Enum, "very rare")
}
