// Package item defines the interface for item operations
package item

//go:generate mockgen -destination=mock/mock_service.go -package=itemmock github.com/KirkDiggler/rpg-forge/internal/services/item Service

import (
	"context"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/statblock"
)

// Service defines the interface for item operations
type Service interface {
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
	GetVersion(ctx context.Context, input *GetVersionInput) (*GetVersionOutput, error)
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
	RenderStatBlock(ctx context.Context, input *RenderStatBlockInput) (*RenderStatBlockOutput, error)
}

// GenerateInput defines the request for generating an item
type GenerateInput struct {
	OwnerID string
	Prompt  string
}

// GenerateOutput defines the response for generating an item
type GenerateOutput struct {
	Record *entities.ItemRecord
}

// UpdateInput defines the request for revising an item. Either ID names a
// stored item or Item carries an unsaved one.
type UpdateInput struct {
	OwnerID string
	Prompt  string
	ID      int64
	Item    *entities.Item
}

// UpdateOutput defines the response for revising an item
type UpdateOutput struct {
	Record *entities.ItemRecord
}

// GetInput defines the request for getting an item
type GetInput struct {
	OwnerID string
	ID      int64
}

// GetOutput defines the response for getting an item
type GetOutput struct {
	Record *entities.ItemRecord
}

// GetVersionInput defines the request for getting an older version
type GetVersionInput struct {
	OwnerID string
	ID      int64
	Version int
}

// GetVersionOutput defines the response for getting an older version
type GetVersionOutput struct {
	Record *entities.ItemRecord
}

// ListInput defines the request for listing items
type ListInput struct {
	OwnerID string
}

// ListOutput defines the response for listing items
type ListOutput struct {
	Records []*entities.ItemRecord
}

// DeleteInput defines the request for deleting an item
type DeleteInput struct {
	OwnerID string
	ID      int64
}

// DeleteOutput defines the response for deleting an item
type DeleteOutput struct{}

// RenderStatBlockInput defines the request for rendering an item card
type RenderStatBlockInput struct {
	OwnerID string
	ID      int64
	Version int
	Item    *entities.Item
}

// RenderStatBlockOutput defines the response for rendering an item card
type RenderStatBlockOutput struct {
	Block    *statblock.ItemBlock
	Markdown string
}
