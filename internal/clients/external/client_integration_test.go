//go:build integration

package external_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-forge/internal/clients/external"
)

func TestLookupSpells_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := external.New(&external.Config{})
	require.NoError(t, err)

	out, err := client.LookupSpells(context.Background(), &external.LookupSpellsInput{
		Names: []string{"Fireball", "Mage Hand", "Definitely Not A Spell"},
	})
	require.NoError(t, err)

	require.Len(t, out.Spells, 2)
	assert.Equal(t, "Fireball", out.Spells[0].Name)
	assert.Equal(t, 3, out.Spells[0].Level)
	assert.Equal(t, 0, out.Spells[1].Level)
	assert.Equal(t, []string{"Definitely Not A Spell"}, out.Unresolved)
}
