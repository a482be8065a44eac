// Package item provides the interface for item persistence
package item

//go:generate mockgen -destination=mock/mock_repository.go -package=itemrepomock github.com/KirkDiggler/rpg-forge/internal/repositories/item Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

// Repository defines the interface for item persistence
type Repository interface {
	// Create stores a new item for an owner at version 1
	// Returns errors.InvalidArgument for a missing owner or item
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves the current version of an item
	// Returns errors.NotFound if the item doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetVersion retrieves a specific version of an item
	// Returns errors.NotFound if the item or version doesn't exist
	GetVersion(ctx context.Context, input GetVersionInput) (*GetVersionOutput, error)

	// Update stores a new version and keeps the previous one in history
	// Returns errors.NotFound if the item doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an item and its history
	// Returns errors.NotFound if the item doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner retrieves all items for an owner ordered by id
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}

// CreateInput defines the input for creating an item
type CreateInput struct {
	OwnerID string
	Item    *entities.Item
}

// CreateOutput defines the output for creating an item
type CreateOutput struct {
	Record *entities.ItemRecord
}

// GetInput defines the input for getting an item
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting an item
type GetOutput struct {
	Record *entities.ItemRecord
}

// GetVersionInput defines the input for getting an item version
type GetVersionInput struct {
	ID      int64
	Version int
}

// GetVersionOutput defines the output for getting an item version
type GetVersionOutput struct {
	Record *entities.ItemRecord
}

// UpdateInput defines the input for updating an item
type UpdateInput struct {
	ID   int64
	Item *entities.Item
}

// UpdateOutput defines the output for updating an item
type UpdateOutput struct {
	Record *entities.ItemRecord
}

// DeleteInput defines the input for deleting an item
type DeleteInput struct {
	ID int64
}

// DeleteOutput defines the output for deleting an item
type DeleteOutput struct{}

// ListByOwnerInput defines the input for listing an owner's items
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing an owner's items
type ListByOwnerOutput struct {
	Records []*entities.ItemRecord
}
