package prompts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-forge/internal/prompts"
)

func TestEmbeddedCatalog(t *testing.T) {
	c, err := prompts.Load()
	require.NoError(t, err)

	for _, name := range []string{prompts.CreatureGenerate, prompts.CreatureUpdate, prompts.ItemGenerate, prompts.ItemUpdate} {
		p, err := c.SystemPrompt(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, p)
	}

	tools := []string{
		"set_base_stats", "set_traits", "set_spellcasting", "set_attacks",
		"set_legendary_actions", "set_reactions", "set_item_base", "set_item_descriptions",
	}
	for _, tool := range tools {
		d, err := c.ToolDescription(tool)
		require.NoError(t, err, tool)
		assert.NotEmpty(t, d)
	}

	d, err := c.ToolDescription("set_attacks")
	require.NoError(t, err)
	assert.Contains(t, d, "savingThrowAttacks")
}

func TestUnknownEntries(t *testing.T) {
	c, err := prompts.Load()
	require.NoError(t, err)

	_, err = c.SystemPrompt("nope")
	assert.Error(t, err)
	_, err = c.ToolDescription("nope")
	assert.Error(t, err)
	assert.Panics(t, func() { prompts.MustToolDescription("nope") })
}

func TestParseInvalid(t *testing.T) {
	_, err := prompts.Parse([]byte("system: [unclosed"))
	assert.Error(t, err)
}
