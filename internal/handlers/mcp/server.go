// Package mcp exposes creature and item generation as MCP tools over stdio
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/services/creature"
	"github.com/KirkDiggler/rpg-forge/internal/services/item"
)

const (
	serverName    = "rpg-forge"
	serverVersion = "0.1.0"
)

// Config holds dependencies for the MCP server
type Config struct {
	CreatureService creature.Service
	ItemService     item.Service
	// OwnerID owns every record created through this server
	OwnerID string
	Logger  *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.CreatureService == nil {
		vb.RequiredField("CreatureService")
	}
	if c.ItemService == nil {
		vb.RequiredField("ItemService")
	}
	errors.ValidateRequired("OwnerID", c.OwnerID, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// NewServer creates an MCP server with every tool registered
func NewServer(cfg *Config) (*mcp.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid mcp config")
	}

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, GenerateCreatureTool(), GenerateCreatureHandler(cfg.CreatureService, cfg.OwnerID))
	mcp.AddTool(server, UpdateCreatureTool(), UpdateCreatureHandler(cfg.CreatureService, cfg.OwnerID))
	mcp.AddTool(server, RenderCreatureTool(), RenderCreatureHandler(cfg.CreatureService, cfg.OwnerID))
	mcp.AddTool(server, GenerateItemTool(), GenerateItemHandler(cfg.ItemService, cfg.OwnerID))
	mcp.AddTool(server, UpdateItemTool(), UpdateItemHandler(cfg.ItemService, cfg.OwnerID))
	mcp.AddTool(server, RenderItemTool(), RenderItemHandler(cfg.ItemService, cfg.OwnerID))

	cfg.Logger.Debug("mcp tools registered", zap.String("owner_id", cfg.OwnerID))
	return server, nil
}

// Serve runs the server on stdin/stdout until ctx is done
func Serve(ctx context.Context, server *mcp.Server) error {
	err := server.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "mcp server stopped")
	}
	return nil
}
