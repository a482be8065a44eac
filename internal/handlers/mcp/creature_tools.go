package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/services/creature"
	"github.com/KirkDiggler/rpg-forge/internal/statblock"
)

// GenerateCreatureInput is the generate_creature tool input
type GenerateCreatureInput struct {
	Prompt string `json:"prompt" jsonschema:"description of the creature to generate"`
}

// UpdateCreatureInput is the update_creature tool input
type UpdateCreatureInput struct {
	Prompt   string             `json:"prompt" jsonschema:"requested changes"`
	ID       int64              `json:"id,omitempty" jsonschema:"stored creature to revise"`
	Creature *entities.Creature `json:"creature,omitempty" jsonschema:"unsaved creature to revise instead of a stored one"`
}

// RenderCreatureInput is the render_creature_statblock tool input
type RenderCreatureInput struct {
	ID       int64              `json:"id,omitempty" jsonschema:"stored creature to render"`
	Version  int                `json:"version,omitempty" jsonschema:"older version to render, 0 for current"`
	Creature *entities.Creature `json:"creature,omitempty" jsonschema:"unsaved creature to render instead of a stored one"`
}

// CreatureResult is returned by the creature tools
type CreatureResult struct {
	ID       int64              `json:"id,omitempty" jsonschema:"record id, 0 when not stored"`
	Version  int                `json:"version,omitempty" jsonschema:"record version"`
	Creature *entities.Creature `json:"creature,omitempty" jsonschema:"the creature"`
	Markdown string             `json:"markdown" jsonschema:"stat block as markdown"`
}

// GenerateCreatureTool defines the generate_creature tool
func GenerateCreatureTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate_creature",
		Description: "Generate and store a new D&D 5e creature from a description",
	}
}

// UpdateCreatureTool defines the update_creature tool
func UpdateCreatureTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_creature",
		Description: "Revise a stored or unsaved creature. Stored creatures get a new version.",
	}
}

// RenderCreatureTool defines the render_creature_statblock tool
func RenderCreatureTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "render_creature_statblock",
		Description: "Render a creature's stat block as markdown",
	}
}

func creatureResult(rec *entities.CreatureRecord) CreatureResult {
	return CreatureResult{
		ID:       rec.ID,
		Version:  rec.Version,
		Creature: rec.Creature,
		Markdown: statblock.NewCreatureBlock(rec.Creature).Markdown(),
	}
}

// GenerateCreatureHandler executes generate_creature
func GenerateCreatureHandler(svc creature.Service, ownerID string) mcp.ToolHandlerFor[GenerateCreatureInput, CreatureResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateCreatureInput) (*mcp.CallToolResult, CreatureResult, error) {
		out, err := svc.Generate(ctx, &creature.GenerateInput{OwnerID: ownerID, Prompt: input.Prompt})
		if err != nil {
			return nil, CreatureResult{}, err
		}

		return nil, creatureResult(out.Record), nil
	}
}

// UpdateCreatureHandler executes update_creature
func UpdateCreatureHandler(svc creature.Service, ownerID string) mcp.ToolHandlerFor[UpdateCreatureInput, CreatureResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateCreatureInput) (*mcp.CallToolResult, CreatureResult, error) {
		out, err := svc.Update(ctx, &creature.UpdateInput{
			OwnerID:  ownerID,
			Prompt:   input.Prompt,
			ID:       input.ID,
			Creature: input.Creature,
		})
		if err != nil {
			return nil, CreatureResult{}, err
		}

		return nil, creatureResult(out.Record), nil
	}
}

// RenderCreatureHandler executes render_creature_statblock
func RenderCreatureHandler(svc creature.Service, ownerID string) mcp.ToolHandlerFor[RenderCreatureInput, CreatureResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RenderCreatureInput) (*mcp.CallToolResult, CreatureResult, error) {
		out, err := svc.RenderStatBlock(ctx, &creature.RenderStatBlockInput{
			OwnerID:  ownerID,
			ID:       input.ID,
			Version:  input.Version,
			Creature: input.Creature,
		})
		if err != nil {
			return nil, CreatureResult{}, err
		}
		return nil, CreatureResult{ID: input.ID, Version: input.Version, Markdown: out.Markdown}, nil
	}
}
