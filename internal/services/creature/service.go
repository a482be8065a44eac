// Package creature defines the interface for creature operations
package creature

//go:generate mockgen -destination=mock/mock_service.go -package=creaturemock github.com/KirkDiggler/rpg-forge/internal/services/creature Service

import (
	"context"

	"github.com/KirkDiggler/rpg-forge/internal/clients/external"
	"github.com/KirkDiggler/rpg-forge/internal/entities"
	dicesession "github.com/KirkDiggler/rpg-forge/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-forge/internal/statblock"
)

// Service defines the interface for creature operations
type Service interface {
	// Generation
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// Stored creatures
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
	GetVersion(ctx context.Context, input *GetVersionInput) (*GetVersionOutput, error)
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// Presentation and table helpers
	RenderStatBlock(ctx context.Context, input *RenderStatBlockInput) (*RenderStatBlockOutput, error)
	RollHitPoints(ctx context.Context, input *RollHitPointsInput) (*RollHitPointsOutput, error)
	LookupSpells(ctx context.Context, input *LookupSpellsInput) (*LookupSpellsOutput, error)
}

// GenerateInput defines the request for generating a creature
type GenerateInput struct {
	OwnerID string
	Prompt  string
}

// GenerateOutput defines the response for generating a creature
type GenerateOutput struct {
	Record *entities.CreatureRecord
}

// UpdateInput defines the request for revising a creature. Either ID names a
// stored creature or Creature carries an unsaved one.
type UpdateInput struct {
	OwnerID  string
	Prompt   string
	ID       int64
	Creature *entities.Creature
}

// UpdateOutput defines the response for revising a creature. Unsaved
// creatures come back with a zero ID and version.
type UpdateOutput struct {
	Record *entities.CreatureRecord
}

// GetInput defines the request for getting a creature
type GetInput struct {
	OwnerID string
	ID      int64
}

// GetOutput defines the response for getting a creature
type GetOutput struct {
	Record *entities.CreatureRecord
}

// GetVersionInput defines the request for getting an older version
type GetVersionInput struct {
	OwnerID string
	ID      int64
	Version int
}

// GetVersionOutput defines the response for getting an older version
type GetVersionOutput struct {
	Record *entities.CreatureRecord
}

// ListInput defines the request for listing creatures
type ListInput struct {
	OwnerID string
}

// ListOutput defines the response for listing creatures
type ListOutput struct {
	Records []*entities.CreatureRecord
}

// DeleteInput defines the request for deleting a creature
type DeleteInput struct {
	OwnerID string
	ID      int64
}

// DeleteOutput defines the response for deleting a creature
type DeleteOutput struct{}

// RenderStatBlockInput defines the request for rendering a stat block.
// Creature renders an unsaved creature; otherwise ID and the optional
// Version select a stored one.
type RenderStatBlockInput struct {
	OwnerID  string
	ID       int64
	Version  int
	Creature *entities.Creature
}

// RenderStatBlockOutput defines the response for rendering a stat block
type RenderStatBlockOutput struct {
	Block    *statblock.CreatureBlock
	Markdown string
}

// RollHitPointsInput defines the request for rolling a creature's hit points
type RollHitPointsInput struct {
	OwnerID string
	ID      int64
}

// RollHitPointsOutput defines the response for rolling hit points
type RollHitPointsOutput struct {
	Notation string
	Average  int
	Roll     *dicesession.DiceRoll
}

// LookupSpellsInput defines the request for resolving a creature's spells
type LookupSpellsInput struct {
	OwnerID string
	ID      int64
}

// LookupSpellsOutput defines the response for resolving spells
type LookupSpellsOutput struct {
	Spells     []*external.SpellData
	Unresolved []string
}
