// Package creature provides the interface for creature persistence
package creature

//go:generate mockgen -destination=mock/mock_repository.go -package=creaturerepomock github.com/KirkDiggler/rpg-forge/internal/repositories/creature Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

// Repository defines the interface for creature persistence
type Repository interface {
	// Create stores a new creature for an owner at version 1
	// Returns errors.InvalidArgument for a missing owner or creature
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves the current version of a creature
	// Returns errors.NotFound if the creature doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetVersion retrieves a specific version of a creature
	// Returns errors.NotFound if the creature or version doesn't exist
	GetVersion(ctx context.Context, input GetVersionInput) (*GetVersionOutput, error)

	// Update stores a new version and keeps the previous one in history
	// Returns errors.NotFound if the creature doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a creature and its history
	// Returns errors.NotFound if the creature doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner retrieves all creatures for an owner ordered by id
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}

// CreateInput defines the input for creating a creature
type CreateInput struct {
	OwnerID  string
	Creature *entities.Creature
}

// CreateOutput defines the output for creating a creature
type CreateOutput struct {
	Record *entities.CreatureRecord
}

// GetInput defines the input for getting a creature
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting a creature
type GetOutput struct {
	Record *entities.CreatureRecord
}

// GetVersionInput defines the input for getting a creature version
type GetVersionInput struct {
	ID      int64
	Version int
}

// GetVersionOutput defines the output for getting a creature version
type GetVersionOutput struct {
	Record *entities.CreatureRecord
}

// UpdateInput defines the input for updating a creature
type UpdateInput struct {
	ID       int64
	Creature *entities.Creature
}

// UpdateOutput defines the output for updating a creature
type UpdateOutput struct {
	Record *entities.CreatureRecord
}

// DeleteInput defines the input for deleting a creature
type DeleteInput struct {
	ID int64
}

// DeleteOutput defines the output for deleting a creature
type DeleteOutput struct{}

// ListByOwnerInput defines the input for listing an owner's creatures
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing an owner's creatures
type ListByOwnerOutput struct {
	Records []*entities.CreatureRecord
}
