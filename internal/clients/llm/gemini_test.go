package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/genai"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/schema"
)

type fakeGenerator struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content,
	config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

type GeminiClientTestSuite struct {
	suite.Suite
	generator *fakeGenerator
	client    Client
	tool      *schema.Tool
}

func (s *GeminiClientTestSuite) SetupTest() {
	s.generator = &fakeGenerator{}
	client, err := NewGemini(context.Background(), &GeminiConfig{generator: s.generator})
	s.Require().NoError(err)
	s.client = client
	s.tool = schema.MustTool[weather]("get_weather", "Look up the weather")
}

func (s *GeminiClientTestSuite) TestInvokeForcesFunctionCalling() {
	s.generator.resp = &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: genai.RoleModel,
				Parts: []*genai.Part{{
					FunctionCall: &genai.FunctionCall{
						Name: "get_weather",
						Args: map[string]any{"city": "Waterdeep", "units": "imperial"},
					},
				}},
			},
		}},
	}

	resp, err := s.client.Invoke(context.Background(), &Request{
		System: "be brief",
		Messages: []Message{
			UserMessage("weather please"),
			{Role: RoleAssistant, Content: "which city?"},
		},
		Tools: []*schema.Tool{s.tool},
	})
	s.Require().NoError(err)
	s.Require().Len(resp.ToolCalls, 1)
	s.Equal("get_weather", resp.ToolCalls[0].Name)
	s.JSONEq(`{"city":"Waterdeep","units":"imperial"}`, string(resp.ToolCalls[0].Arguments))

	s.Equal(defaultGeminiModel, s.generator.model)
	s.Require().Len(s.generator.contents, 2)
	s.Equal(genai.RoleUser, s.generator.contents[0].Role)
	s.Equal(genai.RoleModel, s.generator.contents[1].Role)

	cfg := s.generator.config
	s.Require().NotNil(cfg.SystemInstruction)
	s.Require().Len(cfg.Tools, 1)
	s.Require().Len(cfg.Tools[0].FunctionDeclarations, 1)
	s.Equal("get_weather", cfg.Tools[0].FunctionDeclarations[0].Name)
	s.Require().NotNil(cfg.ToolConfig)
	s.Equal(genai.FunctionCallingConfigModeAny, cfg.ToolConfig.FunctionCallingConfig.Mode)
	s.Equal([]string{"get_weather"}, cfg.ToolConfig.FunctionCallingConfig.AllowedFunctionNames)
}

func (s *GeminiClientTestSuite) TestInvokeProviderErrorIsUnavailable() {
	s.generator.err = errors.Internal("quota exceeded")

	_, err := s.client.Invoke(context.Background(), &Request{Tools: []*schema.Tool{s.tool}})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *GeminiClientTestSuite) TestInvokeNilResponse() {
	resp, err := s.client.Invoke(context.Background(), &Request{Tools: []*schema.Tool{s.tool}})
	s.Require().NoError(err)
	s.Empty(resp.ToolCalls)
}

func TestGeminiClientTestSuite(t *testing.T) {
	suite.Run(t, new(GeminiClientTestSuite))
}
