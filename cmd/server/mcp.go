package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/config"
	forgemcp "github.com/KirkDiggler/rpg-forge/internal/handlers/mcp"
	"github.com/KirkDiggler/rpg-forge/internal/telemetry"
)

var mcpOwner string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the creature and item tools over MCP stdio",
	Long:  `Run an MCP server on stdin/stdout. Records created through it belong to the configured owner.`,
	RunE:  runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpOwner, "owner", "local", "owner ID for records created over MCP")
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// stdout carries the protocol, so logs go to stderr only
	logger, err := telemetry.NewLogger(cfg.Level())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	server, err := forgemcp.NewServer(&forgemcp.Config{
		CreatureService: a.creatures,
		ItemService:     a.items,
		OwnerID:         mcpOwner,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	logger.Info("mcp server starting", zap.String("owner_id", mcpOwner))
	return forgemcp.Serve(ctx, server)
}
