package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/KirkDiggler/rpg-forge/internal/clients/llm"

type tracingClient struct {
	next     Client
	provider string
	tracer   trace.Tracer
}

// WithTracing wraps a client so each invocation records a span.
// A nil tracer falls back to the global provider.
func WithTracing(next Client, provider string, tracer trace.Tracer) Client {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &tracingClient{next: next, provider: provider, tracer: tracer}
}

func (c *tracingClient) Invoke(ctx context.Context, req *Request) (*Response, error) {
	toolNames := make([]string, 0)
	if req != nil {
		for _, t := range req.Tools {
			toolNames = append(toolNames, t.Name)
		}
	}

	ctx, span := c.tracer.Start(ctx, "llm.invoke", trace.WithAttributes(
		attribute.String("llm.provider", c.provider),
		attribute.StringSlice("llm.tools", toolNames),
	))
	defer span.End()

	resp, err := c.next.Invoke(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("llm.tool_calls", len(resp.ToolCalls)))
	return resp, nil
}
