package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	dicesession "github.com/KirkDiggler/rpg-forge/internal/repositories/dice_session"
)

type rollDiceRequest struct {
	EntityID string `json:"entityId"`
	Context  string `json:"context"`
	Notation string `json:"notation"`
}

type rollSession struct {
	Rolls     []dicesession.DiceRoll `json:"rolls"`
	ExpiresAt int64                  `json:"expiresAt"`
}

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice [notation] [entity-id] [context]",
	Short: "Roll dice using dice notation",
	Long: `Roll dice and see individual results. Examples:

  roll-dice 8d8+16 bog-warden hit_points
  roll-dice 1d20 bog-warden attack`,
	Args: cobra.ExactArgs(3),
	RunE: rollDice,
}

func rollDice(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	req := rollDiceRequest{Notation: args[0], EntityID: args[1], Context: args[2]}

	var resp rollSession
	if err := newAPIClient().do(ctx, "POST", "/v1alpha1/dice/roll", req, &resp); err != nil {
		return fmt.Errorf("failed to roll dice: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, roll := range resp.Rolls {
		fmt.Fprintf(out, "Roll %d: %s = %d %v\n", i+1, roll.Notation, roll.Total, roll.Dice)
		if roll.Description != "" {
			fmt.Fprintf(out, "  %s\n", roll.Description)
		}
	}
	fmt.Fprintf(out, "Session expires at: %d\n", resp.ExpiresAt)
	return nil
}
