// Package creature implements the creature orchestrator: generation and
// revision through the model, storage, and stat block rendering
package creature

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/clients/external"
	"github.com/KirkDiggler/rpg-forge/internal/clients/llm"
	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/generation"
	"github.com/KirkDiggler/rpg-forge/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-forge/internal/prompts"
	creaturerepo "github.com/KirkDiggler/rpg-forge/internal/repositories/creature"
	"github.com/KirkDiggler/rpg-forge/internal/services/creature"
	"github.com/KirkDiggler/rpg-forge/internal/statblock"
)

const maxPromptLength = 4000

// Config holds the dependencies for the creature orchestrator
type Config struct {
	CreatureRepo   creaturerepo.Repository
	LLM            llm.Client
	DiceService    dice.Service
	ExternalClient external.Client

	// FanOut requests the sections in parallel groups
	FanOut        bool
	RetryInterval time.Duration
	Logger        *zap.Logger
	Tracer        trace.Tracer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.LLM == nil {
		vb.RequiredField("LLM")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.ExternalClient == nil {
		vb.RequiredField("ExternalClient")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// Orchestrator implements the creature.Service interface
type Orchestrator struct {
	creatureRepo   creaturerepo.Repository
	llm            llm.Client
	diceService    dice.Service
	externalClient external.Client
	fanOut         bool
	retryInterval  time.Duration
	logger         *zap.Logger
	tracer         trace.Tracer
}

// New creates a new creature orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		creatureRepo:   cfg.CreatureRepo,
		llm:            cfg.LLM,
		diceService:    cfg.DiceService,
		externalClient: cfg.ExternalClient,
		fanOut:         cfg.FanOut,
		retryInterval:  cfg.RetryInterval,
		logger:         cfg.Logger,
		tracer:         cfg.Tracer,
	}, nil
}

var _ creature.Service = (*Orchestrator)(nil)

func (o *Orchestrator) newRunner() (*generation.Runner[partial, *entities.Creature], error) {
	ts, err := buildToolset(o.fanOut)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build creature tools")
	}

	return generation.NewRunner(&generation.Config[partial, *entities.Creature]{
		Kind:          entities.EntityTypeCreature,
		LLM:           o.llm,
		Toolset:       ts,
		Merge:         merge,
		Finalize:      finalize,
		FanOut:        o.fanOut,
		RetryInterval: o.retryInterval,
		Logger:        o.logger,
		Tracer:        o.tracer,
	})
}

func validatePrompt(ownerID, prompt string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ownerID", ownerID, vb)
	errors.ValidateRequired("prompt", prompt, vb)
	errors.ValidateMaxLength("prompt", prompt, maxPromptLength, vb)
	return vb.Build()
}

// load fetches a stored creature owned by ownerID. Creatures of other owners
// are reported as not found.
func (o *Orchestrator) load(ctx context.Context, ownerID string, id int64) (*entities.CreatureRecord, error) {
	if ownerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.creatureRepo.Get(ctx, creaturerepo.GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	if out.Record.OwnerID != ownerID {
		return nil, errors.NotFoundf("creature %d not found", id)
	}
	return out.Record, nil
}

// Generate creates a creature from a prompt and stores it
func (o *Orchestrator) Generate(ctx context.Context, input *creature.GenerateInput) (*creature.GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validatePrompt(input.OwnerID, input.Prompt); err != nil {
		return nil, err
	}

	runner, err := o.newRunner()
	if err != nil {
		return nil, err
	}

	c, err := runner.Run(ctx, &generation.Input[partial]{
		System:   prompts.MustSystemPrompt(prompts.CreatureGenerate),
		Messages: []llm.Message{llm.UserMessage(input.Prompt)},
	})
	if err != nil {
		return nil, err
	}

	out, err := o.creatureRepo.Create(ctx, creaturerepo.CreateInput{
		OwnerID:  input.OwnerID,
		Creature: c,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save creature")
	}

	o.logger.Info("creature generated",
		zap.String("owner_id", input.OwnerID),
		zap.Int64("creature_id", out.Record.ID),
		zap.String("name", c.Name))

	return &creature.GenerateOutput{Record: out.Record}, nil
}

func updateMessages(current *entities.Creature, prompt string) ([]llm.Message, error) {
	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal current creature")
	}
	return []llm.Message{
		llm.UserMessage("Current creature:\n```json\n" + string(data) + "\n```"),
		llm.UserMessage(prompt),
	}, nil
}

// Update revises a creature with a prompt. Stored creatures get a new
// version; unsaved ones are returned without being stored.
func (o *Orchestrator) Update(ctx context.Context, input *creature.UpdateInput) (*creature.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validatePrompt(input.OwnerID, input.Prompt); err != nil {
		return nil, err
	}
	if input.ID == 0 && input.Creature == nil {
		return nil, errors.InvalidArgument("either id or creature is required")
	}

	current := input.Creature
	if input.ID != 0 {
		rec, err := o.load(ctx, input.OwnerID, input.ID)
		if err != nil {
			return nil, err
		}
		current = rec.Creature
	} else if err := current.Validate(); err != nil {
		return nil, err
	}

	messages, err := updateMessages(current, input.Prompt)
	if err != nil {
		return nil, err
	}

	runner, err := o.newRunner()
	if err != nil {
		return nil, err
	}

	c, err := runner.Run(ctx, &generation.Input[partial]{
		System:   prompts.MustSystemPrompt(prompts.CreatureUpdate),
		Messages: messages,
		Seed:     seedFrom(current),
	})
	if err != nil {
		return nil, err
	}

	if input.ID == 0 {
		return &creature.UpdateOutput{Record: &entities.CreatureRecord{
			RecordMeta: entities.RecordMeta{OwnerID: input.OwnerID},
			Creature:   c,
		}}, nil
	}

	out, err := o.creatureRepo.Update(ctx, creaturerepo.UpdateInput{ID: input.ID, Creature: c})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save creature")
	}

	o.logger.Info("creature updated",
		zap.String("owner_id", input.OwnerID),
		zap.Int64("creature_id", input.ID),
		zap.Int("version", out.Record.Version))

	return &creature.UpdateOutput{Record: out.Record}, nil
}

// Get returns the current version of a stored creature
func (o *Orchestrator) Get(ctx context.Context, input *creature.GetInput) (*creature.GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	rec, err := o.load(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}
	return &creature.GetOutput{Record: rec}, nil
}

// GetVersion returns a specific version of a stored creature
func (o *Orchestrator) GetVersion(ctx context.Context, input *creature.GetVersionInput) (*creature.GetVersionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.load(ctx, input.OwnerID, input.ID); err != nil {
		return nil, err
	}

	out, err := o.creatureRepo.GetVersion(ctx, creaturerepo.GetVersionInput{ID: input.ID, Version: input.Version})
	if err != nil {
		return nil, err
	}
	return &creature.GetVersionOutput{Record: out.Record}, nil
}

// List returns the owner's creatures ordered by id
func (o *Orchestrator) List(ctx context.Context, input *creature.ListInput) (*creature.ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.creatureRepo.ListByOwner(ctx, creaturerepo.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list creatures")
	}
	return &creature.ListOutput{Records: out.Records}, nil
}

// Delete removes a stored creature and its history
func (o *Orchestrator) Delete(ctx context.Context, input *creature.DeleteInput) (*creature.DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.load(ctx, input.OwnerID, input.ID); err != nil {
		return nil, err
	}

	if _, err := o.creatureRepo.Delete(ctx, creaturerepo.DeleteInput{ID: input.ID}); err != nil {
		return nil, err
	}

	o.logger.Info("creature deleted",
		zap.String("owner_id", input.OwnerID),
		zap.Int64("creature_id", input.ID))

	return &creature.DeleteOutput{}, nil
}

// RenderStatBlock derives the stat block of an unsaved or stored creature
func (o *Orchestrator) RenderStatBlock(ctx context.Context, input *creature.RenderStatBlockInput) (*creature.RenderStatBlockOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c := input.Creature
	switch {
	case c != nil:
		if err := c.Validate(); err != nil {
			return nil, err
		}
	case input.Version > 0:
		out, err := o.GetVersion(ctx, &creature.GetVersionInput{
			OwnerID: input.OwnerID,
			ID:      input.ID,
			Version: input.Version,
		})
		if err != nil {
			return nil, err
		}
		c = out.Record.Creature
	default:
		rec, err := o.load(ctx, input.OwnerID, input.ID)
		if err != nil {
			return nil, err
		}
		c = rec.Creature
	}

	block := statblock.NewCreatureBlock(c)
	return &creature.RenderStatBlockOutput{
		Block:    block,
		Markdown: block.Markdown(),
	}, nil
}

// RollHitPoints rolls a stored creature's hit dice in its hit point session
func (o *Orchestrator) RollHitPoints(ctx context.Context, input *creature.RollHitPointsInput) (*creature.RollHitPointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	rec, err := o.load(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}
	c := rec.Creature

	notation := statblock.HitPointNotation(c)
	out, err := o.diceService.RollDice(ctx, &dice.RollDiceInput{
		EntityID:    fmt.Sprintf("%s:%d", entities.EntityTypeCreature, rec.ID),
		Context:     dice.ContextHitPoints,
		Notation:    notation,
		Description: "Hit points for " + c.Name,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll hit points")
	}

	return &creature.RollHitPointsOutput{
		Notation: notation,
		Average: statblock.AverageHitPoints(c.HitDiceAmount, c.Size.HitDie(),
			statblock.AbilityModifier(c.AbilityScores.Constitution)),
		Roll: out.Roll,
	}, nil
}

// LookupSpells resolves a stored creature's spells against the SRD
func (o *Orchestrator) LookupSpells(ctx context.Context, input *creature.LookupSpellsInput) (*creature.LookupSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	rec, err := o.load(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	names := rec.Creature.Spellcasting.SpellNames()
	if len(names) == 0 {
		return &creature.LookupSpellsOutput{
			Spells:     []*external.SpellData{},
			Unresolved: []string{},
		}, nil
	}

	out, err := o.externalClient.LookupSpells(ctx, &external.LookupSpellsInput{Names: names})
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up spells")
	}

	return &creature.LookupSpellsOutput{
		Spells:     out.Spells,
		Unresolved: out.Unresolved,
	}, nil
}
