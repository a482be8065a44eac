package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

func TestNewSelectsProvider(t *testing.T) {
	client, err := New(context.Background(), &Config{Provider: " OpenAI ", APIKey: "k"})
	require.NoError(t, err)
	_, ok := client.(*openAIClient)
	assert.True(t, ok)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), &Config{Provider: "mystery", APIKey: "k"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "must be one of")
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), &Config{Provider: ProviderGemini})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
