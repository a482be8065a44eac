package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

var generateCreatureCmd = &cobra.Command{
	Use:   "generate-creature [prompt...]",
	Short: "Generate a creature and print its stat block",
	Long: `Generate and store a creature, then render its stat block. Example:

  generate-creature a bog-dwelling druid who guards a drowned shrine`,
	Args: cobra.MinimumNArgs(1),
	RunE: generateCreature,
}

var generateItemCmd = &cobra.Command{
	Use:   "generate-item [prompt...]",
	Short: "Generate a magic item and print its item card",
	Args:  cobra.MinimumNArgs(1),
	RunE:  generateItem,
}

func generateCreature(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client := newAPIClient()
	prompt := strings.Join(args, " ")
	fmt.Fprintf(cmd.ErrOrStderr(), "Generating creature: %s...\n", prompt)

	var rec entities.CreatureRecord
	if err := client.do(ctx, "POST", "/v1alpha1/creatures/generate", generateRequest{Prompt: prompt}, &rec); err != nil {
		return fmt.Errorf("failed to generate creature: %w", err)
	}

	md, err := client.markdown(ctx, fmt.Sprintf("/v1alpha1/creatures/%d/statblock?format=markdown", rec.ID))
	if err != nil {
		return fmt.Errorf("failed to fetch stat block: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Stored creature %d (version %d)\n", rec.ID, rec.Version)
	return renderMarkdown(cmd.OutOrStdout(), md, rawOutput)
}

func generateItem(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client := newAPIClient()
	prompt := strings.Join(args, " ")
	fmt.Fprintf(cmd.ErrOrStderr(), "Generating item: %s...\n", prompt)

	var rec entities.ItemRecord
	if err := client.do(ctx, "POST", "/v1alpha1/items/generate", generateRequest{Prompt: prompt}, &rec); err != nil {
		return fmt.Errorf("failed to generate item: %w", err)
	}

	md, err := client.markdown(ctx, fmt.Sprintf("/v1alpha1/items/%d/statblock?format=markdown", rec.ID))
	if err != nil {
		return fmt.Errorf("failed to fetch item card: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Stored item %d (version %d)\n", rec.ID, rec.Version)
	return renderMarkdown(cmd.OutOrStdout(), md, rawOutput)
}
