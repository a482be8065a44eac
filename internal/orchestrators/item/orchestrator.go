// Package item implements the item orchestrator
package item

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/clients/llm"
	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/generation"
	"github.com/KirkDiggler/rpg-forge/internal/prompts"
	itemrepo "github.com/KirkDiggler/rpg-forge/internal/repositories/item"
	"github.com/KirkDiggler/rpg-forge/internal/services/item"
	"github.com/KirkDiggler/rpg-forge/internal/statblock"
)

const maxPromptLength = 4000

// Config holds the dependencies for the item orchestrator
type Config struct {
	ItemRepo      itemrepo.Repository
	LLM           llm.Client
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
	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.LLM == nil {
		vb.RequiredField("LLM")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// Orchestrator implements the item.Service interface
type Orchestrator struct {
	itemRepo      itemrepo.Repository
	llm           llm.Client
	fanOut        bool
	retryInterval time.Duration
	logger        *zap.Logger
	tracer        trace.Tracer
}

// New creates a new item orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		itemRepo:      cfg.ItemRepo,
		llm:           cfg.LLM,
		fanOut:        cfg.FanOut,
		retryInterval: cfg.RetryInterval,
		logger:        cfg.Logger,
		tracer:        cfg.Tracer,
	}, nil
}

var _ item.Service = (*Orchestrator)(nil)

func (o *Orchestrator) newRunner() (*generation.Runner[partial, *entities.Item], error) {
	ts, err := buildToolset(o.fanOut)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build item tools")
	}

	return generation.NewRunner(&generation.Config[partial, *entities.Item]{
		Kind:          entities.EntityTypeItem,
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

func (o *Orchestrator) load(ctx context.Context, ownerID string, id int64) (*entities.ItemRecord, error) {
	if ownerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.itemRepo.Get(ctx, itemrepo.GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	if out.Record.OwnerID != ownerID {
		return nil, errors.NotFoundf("item %d not found", id)
	}
	return out.Record, nil
}

// Generate creates an item from a prompt and stores it
func (o *Orchestrator) Generate(ctx context.Context, input *item.GenerateInput) (*item.GenerateOutput, error) {
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

	i, err := runner.Run(ctx, &generation.Input[partial]{
		System:   prompts.MustSystemPrompt(prompts.ItemGenerate),
		Messages: []llm.Message{llm.UserMessage(input.Prompt)},
	})
	if err != nil {
		return nil, err
	}

	out, err := o.itemRepo.Create(ctx, itemrepo.CreateInput{OwnerID: input.OwnerID, Item: i})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save item")
	}

	o.logger.Info("item generated",
		zap.String("owner_id", input.OwnerID),
		zap.Int64("item_id", out.Record.ID),
		zap.String("name", i.Name))

	return &item.GenerateOutput{Record: out.Record}, nil
}

// Update revises an item with a prompt. Unsaved items are returned without
// being stored.
func (o *Orchestrator) Update(ctx context.Context, input *item.UpdateInput) (*item.UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validatePrompt(input.OwnerID, input.Prompt); err != nil {
		return nil, err
	}
	if input.ID == 0 && input.Item == nil {
		return nil, errors.InvalidArgument("either id or item is required")
	}

	current := input.Item
	if input.ID != 0 {
		rec, err := o.load(ctx, input.OwnerID, input.ID)
		if err != nil {
			return nil, err
		}
		current = rec.Item
	} else if err := current.Validate(); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal current item")
	}

	runner, err := o.newRunner()
	if err != nil {
		return nil, err
	}

	i, err := runner.Run(ctx, &generation.Input[partial]{
		System: prompts.MustSystemPrompt(prompts.ItemUpdate),
		Messages: []llm.Message{
			llm.UserMessage("Current item:\n```json\n" + string(data) + "\n```"),
			llm.UserMessage(input.Prompt),
		},
		Seed: seedFrom(current),
	})
	if err != nil {
		return nil, err
	}

	if input.ID == 0 {
		return &item.UpdateOutput{Record: &entities.ItemRecord{
			RecordMeta: entities.RecordMeta{OwnerID: input.OwnerID},
			Item:       i,
		}}, nil
	}

	out, err := o.itemRepo.Update(ctx, itemrepo.UpdateInput{ID: input.ID, Item: i})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save item")
	}

	o.logger.Info("item updated",
		zap.String("owner_id", input.OwnerID),
		zap.Int64("item_id", input.ID),
		zap.Int("version", out.Record.Version))

	return &item.UpdateOutput{Record: out.Record}, nil
}

// Get returns the current version of a stored item
func (o *Orchestrator) Get(ctx context.Context, input *item.GetInput) (*item.GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	rec, err := o.load(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}
	return &item.GetOutput{Record: rec}, nil
}

// GetVersion returns a specific version of a stored item
func (o *Orchestrator) GetVersion(ctx context.Context, input *item.GetVersionInput) (*item.GetVersionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.load(ctx, input.OwnerID, input.ID); err != nil {
		return nil, err
	}

	out, err := o.itemRepo.GetVersion(ctx, itemrepo.GetVersionInput{ID: input.ID, Version: input.Version})
	if err != nil {
		return nil, err
	}
	return &item.GetVersionOutput{Record: out.Record}, nil
}

// List returns the owner's items ordered by id
func (o *Orchestrator) List(ctx context.Context, input *item.ListInput) (*item.ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.itemRepo.ListByOwner(ctx, itemrepo.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}
	return &item.ListOutput{Records: out.Records}, nil
}

// Delete removes a stored item and its history
func (o *Orchestrator) Delete(ctx context.Context, input *item.DeleteInput) (*item.DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.load(ctx, input.OwnerID, input.ID); err != nil {
		return nil, err
	}
	if _, err := o.itemRepo.Delete(ctx, itemrepo.DeleteInput{ID: input.ID}); err != nil {
		return nil, err
	}

	o.logger.Info("item deleted",
		zap.String("owner_id", input.OwnerID),
		zap.Int64("item_id", input.ID))

	return &item.DeleteOutput{}, nil
}

// RenderStatBlock derives the card of an unsaved or stored item
func (o *Orchestrator) RenderStatBlock(ctx context.Context, input *item.RenderStatBlockInput) (*item.RenderStatBlockOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	i := input.Item
	switch {
	case i != nil:
		if err := i.Validate(); err != nil {
			return nil, err
		}
	case input.Version > 0:
		out, err := o.GetVersion(ctx, &item.GetVersionInput{
			OwnerID: input.OwnerID,
			ID:      input.ID,
			Version: input.Version,
		})
		if err != nil {
			return nil, err
		}
		i = out.Record.Item
	default:
		rec, err := o.load(ctx, input.OwnerID, input.ID)
		if err != nil {
			return nil, err
		}
		i = rec.Item
	}

	block := statblock.NewItemBlock(i)
	return &item.RenderStatBlockOutput{
		Block:    block,
		Markdown: block.Markdown(),
	}, nil
}
