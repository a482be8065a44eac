package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/clients/external"
	"github.com/KirkDiggler/rpg-forge/internal/clients/llm"
	"github.com/KirkDiggler/rpg-forge/internal/config"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	creatureorch "github.com/KirkDiggler/rpg-forge/internal/orchestrators/creature"
	"github.com/KirkDiggler/rpg-forge/internal/orchestrators/dice"
	itemorch "github.com/KirkDiggler/rpg-forge/internal/orchestrators/item"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-forge/internal/redis"
	creaturerepo "github.com/KirkDiggler/rpg-forge/internal/repositories/creature"
	dicesession "github.com/KirkDiggler/rpg-forge/internal/repositories/dice_session"
	itemrepo "github.com/KirkDiggler/rpg-forge/internal/repositories/item"
	"github.com/KirkDiggler/rpg-forge/internal/telemetry"
)

const redisPingTimeout = 5 * time.Second

// app holds the wired services shared by the server and mcp commands
type app struct {
	creatures *creatureorch.Orchestrator
	items     *itemorch.Orchestrator
	dice      dice.Service
	redis     redisclient.Client
}

func (a *app) Close() error {
	return a.redis.Close()
}

func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	redisClient, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		PoolSize:   10,
		MaxRetries: 3,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}
	if err := redisclient.Ping(ctx, redisClient, redisPingTimeout); err != nil {
		_ = redisClient.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}

	a, err := wireServices(ctx, cfg, logger, redisClient)
	if err != nil {
		_ = redisClient.Close()
		return nil, err
	}
	return a, nil
}

func wireServices(ctx context.Context, cfg *config.Config, logger *zap.Logger, redisClient redisclient.Client) (*app, error) {
	clk := clock.New()
	tracer := telemetry.Tracer()

	creatureRepo, err := creaturerepo.NewRedis(&creaturerepo.Config{Client: redisClient, Clock: clk, Logger: logger})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create creature repository")
	}
	itemRepo, err := itemrepo.NewRedis(&itemrepo.Config{Client: redisClient, Clock: clk, Logger: logger})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create item repository")
	}
	diceSessionRepo, err := dicesession.NewRedisRepository(&dicesession.Config{Client: redisClient, Clock: clk})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice session repository")
	}

	llmClient, err := llm.New(ctx, &llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
		Logger:   logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create llm client")
	}
	llmClient = llm.WithTracing(llmClient, cfg.LLMProvider, tracer)

	externalClient, err := external.New(&external.Config{
		BaseURL:  cfg.SRDBaseURL,
		CacheTTL: cfg.SRDCacheTTL,
		Logger:   logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create srd client")
	}

	diceService, err := dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: diceSessionRepo,
		IDGenerator:     idgen.NewUUID("roll"),
		Logger:          logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice orchestrator")
	}

	creatures, err := creatureorch.New(&creatureorch.Config{
		CreatureRepo:   creatureRepo,
		LLM:            llmClient,
		DiceService:    diceService,
		ExternalClient: externalClient,
		FanOut:         cfg.FanOut,
		RetryInterval:  cfg.RetryInterval,
		Logger:         logger,
		Tracer:         tracer,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create creature orchestrator")
	}

	items, err := itemorch.New(&itemorch.Config{
		ItemRepo:      itemRepo,
		LLM:           llmClient,
		FanOut:        cfg.FanOut,
		RetryInterval: cfg.RetryInterval,
		Logger:        logger,
		Tracer:        tracer,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create item orchestrator")
	}

	return &app{
		creatures: creatures,
		items:     items,
		dice:      diceService,
		redis:     redisClient,
	}, nil
}
