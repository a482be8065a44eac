package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-forge/internal/auth"
	"github.com/KirkDiggler/rpg-forge/internal/config"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token [user-id]",
	Short: "Issue a bearer token signed with RPG_FORGE_JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE:  issueToken,
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

func issueToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	verifier, err := auth.NewVerifier(&auth.Config{Secret: cfg.JWTSecret})
	if err != nil {
		return err
	}

	token, err := verifier.Issue(args[0], tokenTTL)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
