package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/services/item"
	"github.com/KirkDiggler/rpg-forge/internal/statblock"
)

// GenerateItemInput is the generate_item tool input
type GenerateItemInput struct {
	Prompt string `json:"prompt" jsonschema:"description of the item to generate"`
}

// UpdateItemInput is the update_item tool input
type UpdateItemInput struct {
	Prompt string         `json:"prompt" jsonschema:"requested changes"`
	ID     int64          `json:"id,omitempty" jsonschema:"stored item to revise"`
	Item   *entities.Item `json:"item,omitempty" jsonschema:"unsaved item to revise instead of a stored one"`
}

// RenderItemInput is the render_item_card tool input
type RenderItemInput struct {
	ID      int64          `json:"id,omitempty" jsonschema:"stored item to render"`
	Version int            `json:"version,omitempty" jsonschema:"older version to render, 0 for current"`
	Item    *entities.Item `json:"item,omitempty" jsonschema:"unsaved item to render instead of a stored one"`
}

// ItemResult is returned by the item tools
type ItemResult struct {
	ID       int64          `json:"id,omitempty" jsonschema:"record id, 0 when not stored"`
	Version  int            `json:"version,omitempty" jsonschema:"record version"`
	Item     *entities.Item `json:"item,omitempty" jsonschema:"the item"`
	Markdown string         `json:"markdown" jsonschema:"item card as markdown"`
}

// GenerateItemTool defines the generate_item tool
func GenerateItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate_item",
		Description: "Generate and store a new D&D 5e item from a description",
	}
}

// UpdateItemTool defines the update_item tool
func UpdateItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_item",
		Description: "Revise a stored or unsaved item. Stored items get a new version.",
	}
}

// RenderItemTool defines the render_item_card tool
func RenderItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "render_item_card",
		Description: "Render an item card as markdown",
	}
}

func itemResult(rec *entities.ItemRecord) ItemResult {
	return ItemResult{
		ID:       rec.ID,
		Version:  rec.Version,
		Item:     rec.Item,
		Markdown: statblock.NewItemBlock(rec.Item).Markdown(),
	}
}

// GenerateItemHandler executes generate_item
func GenerateItemHandler(svc item.Service, ownerID string) mcp.ToolHandlerFor[GenerateItemInput, ItemResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateItemInput) (*mcp.CallToolResult, ItemResult, error) {
		out, err := svc.Generate(ctx, &item.GenerateInput{OwnerID: ownerID, Prompt: input.Prompt})
		if err != nil {
			return nil, ItemResult{}, err
		}
		return nil, itemResult(out.Record), nil
	}
}

// UpdateItemHandler executes update_item
func UpdateItemHandler(svc item.Service, ownerID string) mcp.ToolHandlerFor[UpdateItemInput, ItemResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateItemInput) (*mcp.CallToolResult, ItemResult, error) {
		out, err := svc.Update(ctx, &item.UpdateInput{
			OwnerID: ownerID,
			Prompt:  input.Prompt,
			ID:      input.ID,
			Item:    input.Item,
		})
		if err != nil {
			return nil, ItemResult{}, err
		}
		return nil, itemResult(out.Record), nil
	}
}

// RenderItemHandler executes render_item_card
func RenderItemHandler(svc item.Service, ownerID string) mcp.ToolHandlerFor[RenderItemInput, ItemResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RenderItemInput) (*mcp.CallToolResult, ItemResult, error) {
		out, err := svc.RenderStatBlock(ctx, &item.RenderStatBlockInput{
			OwnerID: ownerID,
			ID:      input.ID,
			Version: input.Version,
			Item:    input.Item,
		})
		if err != nil {
			return nil, ItemResult{}, err
		}
		return nil, ItemResult{ID: input.ID, Version: input.Version, Markdown: out.Markdown}, nil
	}
}
