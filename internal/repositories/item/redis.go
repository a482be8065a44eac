package item

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-forge/internal/redis"
	"github.com/KirkDiggler/rpg-forge/internal/repositories/records"
)

// Config holds the configuration for the redis item repository
type Config struct {
	Client redis.Client
	Clock  clock.Clock
	Logger *zap.Logger
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	store *records.Store[*entities.ItemRecord]
}

// NewRedis creates a redis-backed item repository
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := records.NewStore(&records.Config[*entities.ItemRecord]{
		Client: cfg.Client,
		Clock:  cfg.Clock,
		Logger: cfg.Logger,
		New:    func() *entities.ItemRecord { return &entities.ItemRecord{} },
	})
	if err != nil {
		return nil, err
	}

	return &redisRepository{store: store}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Item == nil {
		return nil, errors.InvalidArgument("item cannot be nil")
	}

	rec, err := r.store.Create(ctx, &entities.ItemRecord{
		RecordMeta: entities.RecordMeta{OwnerID: input.OwnerID},
		Item:       input.Item,
	})
	if err != nil {
		return nil, err
	}
	return &CreateOutput{Record: rec}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	rec, err := r.store.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Record: rec}, nil
}

func (r *redisRepository) GetVersion(ctx context.Context, input GetVersionInput) (*GetVersionOutput, error) {
	rec, err := r.store.GetVersion(ctx, input.ID, input.Version)
	if err != nil {
		return nil, err
	}
	return &GetVersionOutput{Record: rec}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Item == nil {
		return nil, errors.InvalidArgument("item cannot be nil")
	}

	rec, err := r.store.Update(ctx, &entities.ItemRecord{
		RecordMeta: entities.RecordMeta{ID: input.ID},
		Item:       input.Item,
	})
	if err != nil {
		return nil, err
	}
	return &UpdateOutput{Record: rec}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := r.store.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	recs, err := r.store.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &ListByOwnerOutput{Records: recs}, nil
}
