// Package dice rolls dice notation and groups the results in sessions
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/rpg-forge/internal/orchestrators/dice Service

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-forge/internal/repositories/dice_session"
)

const (
	// ContextHitPoints groups hit point rolls for a creature
	ContextHitPoints = "hit_points"

	// DefaultSessionTTL is how long a roll session lives
	DefaultSessionTTL = 15 * time.Minute
)

// Service defines the interface for dice operations
type Service interface {
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator
	// Roller defaults to dice.DefaultRoller
	Roller dice.Roller
	Logger *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Roller == nil {
		c.Roller = dice.DefaultRoller
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

type orchestrator struct {
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	roller          dice.Roller
	logger          *zap.Logger
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		roller:          cfg.Roller,
		logger:          cfg.Logger,
	}, nil
}

func (o *orchestrator) roll(n Notation) (*dicesession.DiceRoll, error) {
	values, err := o.roller.RollN(n.Count, n.Size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", n)
	}

	diceTotal := 0
	for _, v := range values {
		diceTotal += v
	}

	return &dicesession.DiceRoll{
		RollID:    o.idGen.Generate(),
		Notation:  n.String(),
		Dice:      values,
		DiceTotal: diceTotal,
		Modifier:  n.Modifier,
		Total:     diceTotal + n.Modifier,
	}, nil
}

// RollDice rolls the notation and appends the roll to the entity's session
// for the context, creating the session if needed.
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}
	if input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	notation, err := ParseNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	roll, err := o.roll(notation)
	if err != nil {
		return nil, err
	}
	roll.Description = input.Description

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})

	var session *dicesession.DiceSession
	switch {
	case err == nil:
		session = getOutput.Session
		session.Rolls = append(session.Rolls, *roll)
		if err := o.diceSessionRepo.Update(ctx, session); err != nil {
			return nil, errors.Wrap(err, "failed to update dice session")
		}
	case errors.IsNotFound(err):
		ttl := input.TTL
		if ttl == 0 {
			ttl = DefaultSessionTTL
		}
		createOutput, err := o.diceSessionRepo.Create(ctx, dicesession.CreateInput{
			EntityID: input.EntityID,
			Context:  input.Context,
			Rolls:    []dicesession.DiceRoll{*roll},
			TTL:      ttl,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create dice session")
		}
		session = createOutput.Session
	default:
		return nil, errors.Wrap(err, "failed to check for existing session")
	}

	o.logger.Info("dice rolled",
		zap.String("entity_id", input.EntityID),
		zap.String("context", input.Context),
		zap.String("notation", roll.Notation),
		zap.Int("total", roll.Total),
		zap.String("roll_id", roll.RollID))

	return &RollDiceOutput{
		Roll:    roll,
		Session: session,
	}, nil
}

// GetRollSession retrieves an existing dice roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dice session")
	}

	return &GetRollSessionOutput{Session: getOutput.Session}, nil
}

// ClearRollSession removes a dice roll session
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	deleteOutput, err := o.diceSessionRepo.Delete(ctx, dicesession.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dice session")
	}

	o.logger.Info("dice session cleared",
		zap.String("entity_id", input.EntityID),
		zap.String("context", input.Context),
		zap.Int("rolls_deleted", deleteOutput.RollsDeleted))

	return &ClearRollSessionOutput{RollsDeleted: deleteOutput.RollsDeleted}, nil
}
