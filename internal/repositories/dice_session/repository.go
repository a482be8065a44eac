// Package dicesession stores dice rolls grouped by entity and context
package dicesession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/rpg-forge/internal/repositories/dice_session Repository

// DiceSession is the set of rolls made for one entity in one context, e.g.
// creature "creature:12" rolling "hit_points"
type DiceSession struct {
	EntityID  string     `json:"entityId"`
	Context   string     `json:"context"`
	Rolls     []DiceRoll `json:"rolls"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// DiceRoll is a single roll of a notation such as "8d8+16"
type DiceRoll struct {
	RollID      string `json:"rollId"`
	Notation    string `json:"notation"`
	Dice        []int  `json:"dice"`
	DiceTotal   int    `json:"diceTotal"`
	Modifier    int    `json:"modifier"`
	Total       int    `json:"total"`
	Description string `json:"description,omitempty"`
}

// CreateInput contains parameters for creating a dice session
type CreateInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	// TTL defaults to 15 minutes
	TTL time.Duration
}

// CreateOutput contains the result of creating a dice session
type CreateOutput struct {
	Session *DiceSession
}

// GetInput contains parameters for retrieving a dice session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the result of retrieving a dice session
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput contains parameters for deleting a dice session
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput contains the result of deleting a dice session
type DeleteOutput struct {
	RollsDeleted int
}

// Repository defines the interface for dice session storage operations
type Repository interface {
	// Create stores a new dice session with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a dice session by entity ID and context
	// Returns errors.NotFound if the session doesn't exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a dice session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Update replaces an existing session, keeping its expiry
	Update(ctx context.Context, session *DiceSession) error
}
