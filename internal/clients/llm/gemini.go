package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

const defaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the slice of genai.Models the client uses
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig configures a client for the Gemini API
type GeminiConfig struct {
	APIKey string
	Model  string
	Logger *zap.Logger

	// generator replaces the genai client in tests
	generator contentGenerator
}

// Validate checks required fields and fills defaults
func (c *GeminiConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.generator == nil {
		errors.ValidateRequired("APIKey", c.APIKey, vb)
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Model == "" {
		c.Model = defaultGeminiModel
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

type geminiClient struct {
	generator contentGenerator
	model     string
	logger    *zap.Logger
}

// NewGemini creates a Gemini client
func NewGemini(ctx context.Context, cfg *GeminiConfig) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	generator := cfg.generator
	if generator == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create gemini client")
		}
		generator = client.Models
	}

	return &geminiClient{
		generator: generator,
		model:     cfg.Model,
		logger:    cfg.Logger,
	}, nil
}

func (c *geminiClient) buildConfig(req *Request) (*genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	if len(req.Tools) == 0 {
		return config, nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
	names := make([]string, 0, len(req.Tools))
	for _, t := range req.Tools {
		params, err := t.ParametersJSON()
		if err != nil {
			return nil, err
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:                 t.Name,
			Description:          t.Description,
			ParametersJsonSchema: params,
		})
		names = append(names, t.Name)
	}

	config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	config.ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{
			Mode:                 genai.FunctionCallingConfigModeAny,
			AllowedFunctionNames: names,
		},
	}
	return config, nil
}

// Invoke calls GenerateContent with function calling forced
func (c *geminiClient) Invoke(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.InvalidArgument("request is required")
	}

	config, err := c.buildConfig(req)
	if err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	start := time.Now()
	resp, err := c.generator.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "request to model provider failed")
	}

	c.logger.Debug("generate content finished",
		zap.String("model", c.model),
		zap.Int("tools", len(req.Tools)),
		zap.Duration("elapsed", time.Since(start)),
	)

	out := &Response{}
	if resp == nil {
		return out, nil
	}

	for _, call := range resp.FunctionCalls() {
		args, err := json.Marshal(call.Args)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode function call arguments")
		}
		out.ToolCalls = append(out.ToolCalls, ToolCall{Name: call.Name, Arguments: args})
	}
	if len(out.ToolCalls) == 0 {
		out.Text = strings.TrimSpace(resp.Text())
	}

	return out, nil
}
