package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-forge/internal/clients/llm"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/schema"
)

// MaxAttempts is the total number of attempts for every generation call
const MaxAttempts = 3

// DefaultRetryInterval is the fixed pause between attempts
const DefaultRetryInterval = 500 * time.Millisecond

const tracerName = "github.com/KirkDiggler/rpg-forge/internal/generation"

// MergeFunc combines two partials; b wins for scalar sections
type MergeFunc[P any] func(a, b P) P

// FinalizeFunc turns the merged partial into a validated record
type FinalizeFunc[P, R any] func(p P) (R, error)

// Config wires a Runner
type Config[P, R any] struct {
	// Kind names the record in errors, "creature" or "item"
	Kind     string
	LLM      llm.Client
	Toolset  *Toolset[P]
	Merge    MergeFunc[P]
	Finalize FinalizeFunc[P, R]

	// FanOut invokes the model once per tool group in parallel
	FanOut        bool
	RetryInterval time.Duration
	Logger        *zap.Logger
	Tracer        trace.Tracer
}

// Validate validates the config and fills defaults
func (c *Config[P, R]) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Kind", c.Kind, vb)
	if c.LLM == nil {
		vb.RequiredField("LLM")
	}
	if c.Toolset == nil || len(c.Toolset.Tools()) == 0 {
		vb.RequiredField("Toolset")
	}
	if c.Merge == nil {
		vb.RequiredField("Merge")
	}
	if c.Finalize == nil {
		vb.RequiredField("Finalize")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultRetryInterval
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Tracer == nil {
		c.Tracer = otel.Tracer(tracerName)
	}
	return nil
}

// Runner executes the attempt chain for one record kind
type Runner[P, R any] struct {
	kind          string
	llm           llm.Client
	toolset       *Toolset[P]
	merge         MergeFunc[P]
	finalize      FinalizeFunc[P, R]
	fanOut        bool
	retryInterval time.Duration
	logger        *zap.Logger
	tracer        trace.Tracer
}

// NewRunner creates a Runner
func NewRunner[P, R any](cfg *Config[P, R]) (*Runner[P, R], error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid generation config")
	}

	return &Runner[P, R]{
		kind:          cfg.Kind,
		llm:           cfg.LLM,
		toolset:       cfg.Toolset,
		merge:         cfg.Merge,
		finalize:      cfg.Finalize,
		fanOut:        cfg.FanOut,
		retryInterval: cfg.RetryInterval,
		logger:        cfg.Logger,
		tracer:        cfg.Tracer,
	}, nil
}

// Input is one generation or update request
type Input[P any] struct {
	System   string
	Messages []llm.Message
	// Seed is the starting partial, the current record for updates
	Seed P
}

// Run performs up to MaxAttempts attempts and returns the first record that
// finalizes. No partial record is returned on failure.
func (r *Runner[P, R]) Run(ctx context.Context, input *Input[P]) (R, error) {
	var zero R
	if input == nil {
		return zero, errors.InvalidArgument("input is required")
	}

	ctx, span := r.tracer.Start(ctx, "generation.run", trace.WithAttributes(
		attribute.String("generation.kind", r.kind),
		attribute.Bool("generation.fan_out", r.fanOut),
	))
	defer span.End()

	attempt := 0
	var feedback string
	op := func() (R, error) {
		attempt++
		rec, err := r.attempt(ctx, attempt, input, feedback)
		if err == nil {
			return rec, nil
		}
		if ctx.Err() != nil {
			return zero, backoff.Permanent(ctx.Err())
		}
		switch KindOf(err) {
		case KindMalformedToolCall, KindValidation:
			feedback = err.Error()
		default:
			feedback = ""
		}
		return zero, err
	}

	rec, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(r.retryInterval)),
		backoff.WithMaxTries(uint(MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.logger.Warn("generation attempt failed",
				zap.String("kind", r.kind),
				zap.String("failure", string(KindOf(err))),
				zap.Duration("retry_in", next),
				zap.Error(err),
			)
		}),
	)
	span.SetAttributes(attribute.Int("generation.attempts", attempt))
	if err == nil {
		return rec, nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}

	r.logger.Error("generation failed",
		zap.String("kind", r.kind),
		zap.Int("attempts", attempt),
		zap.Error(err),
	)
	return zero, errors.Wrap(err, fmt.Sprintf("unable to generate %s", r.kind))
}

func (r *Runner[P, R]) attempt(ctx context.Context, n int, input *Input[P], feedback string) (R, error) {
	var zero R

	ctx, span := r.tracer.Start(ctx, "generation.attempt", trace.WithAttributes(
		attribute.String("generation.kind", r.kind),
		attribute.Int("generation.attempt", n),
	))
	defer span.End()

	rec, err := r.runAttempt(ctx, input, feedback)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("generation.failure", string(KindOf(err))))
		return zero, err
	}
	return rec, nil
}

func (r *Runner[P, R]) runAttempt(ctx context.Context, input *Input[P], feedback string) (R, error) {
	var zero R

	messages := append([]llm.Message(nil), input.Messages...)
	if feedback != "" {
		messages = append(messages, llm.UserMessage(fmt.Sprintf(
			"The previous answer was rejected: %s. Call the tools again with corrected arguments.", feedback)))
	}

	responses, err := r.invoke(ctx, input.System, messages)
	if err != nil {
		return zero, err
	}

	acc := input.Seed
	calls := 0
	for _, resp := range responses {
		if resp == nil {
			continue
		}
		for _, call := range resp.ToolCalls {
			calls++
			partial, err := r.toolset.Decode(call)
			if err != nil {
				return zero, tag(KindMalformedToolCall, err, fmt.Sprintf("malformed %s tool call", call.Name))
			}
			acc = r.merge(acc, partial)
		}
	}
	if calls == 0 {
		return zero, tag(KindNoData, nil, "model returned no tool calls")
	}

	rec, err := r.finalize(acc)
	if err != nil {
		return zero, tag(KindValidation, err, fmt.Sprintf("generated %s failed validation", r.kind))
	}
	return rec, nil
}

// invoke returns one response per tool group, in group order
func (r *Runner[P, R]) invoke(ctx context.Context, system string, messages []llm.Message) ([]*llm.Response, error) {
	groups := r.toolset.Groups()
	if !r.fanOut || len(groups) == 1 {
		groups = [][]*schema.Tool{r.toolset.Tools()}
	}

	responses := make([]*llm.Response, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	for i, tools := range groups {
		g.Go(func() error {
			resp, err := r.llm.Invoke(gctx, &llm.Request{
				System:   system,
				Messages: messages,
				Tools:    tools,
			})
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, tag(KindProvider, err, "model invocation failed")
	}
	return responses, nil
}
