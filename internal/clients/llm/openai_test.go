package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/schema"
)

type weather struct {
	City  string `json:"city"`
	Units string `json:"units"`
}

type OpenAIClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	handler  http.HandlerFunc
	received *openAIRequest
	client   Client
	tool     *schema.Tool
}

func (s *OpenAIClientTestSuite) SetupTest() {
	s.received = nil
	s.handler = nil
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/chat/completions", r.URL.Path)
		s.Equal("Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		s.Require().NoError(err)
		var req openAIRequest
		s.Require().NoError(json.Unmarshal(body, &req))
		s.received = &req

		s.handler(w, r)
	}))

	client, err := NewOpenAI(&OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: s.server.URL + "/v1/",
		Model:   "test-model",
	})
	s.Require().NoError(err)
	s.client = client

	s.tool = schema.MustTool[weather]("get_weather", "Look up the weather",
		schema.Enum("units", []string{"metric", "imperial"}))
}

func (s *OpenAIClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *OpenAIClientTestSuite) TestInvokeParsesToolCalls() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{
			"choices": [{
				"message": {
					"content": null,
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {"name": "get_weather", "arguments": "{\"city\":\"Baldur's Gate\",\"units\":\"metric\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`)
	}

	resp, err := s.client.Invoke(context.Background(), &Request{
		System:   "be brief",
		Messages: []Message{UserMessage("weather please")},
		Tools:    []*schema.Tool{s.tool},
	})
	s.Require().NoError(err)
	s.Require().Len(resp.ToolCalls, 1)
	s.Equal("get_weather", resp.ToolCalls[0].Name)
	s.JSONEq(`{"city":"Baldur's Gate","units":"metric"}`, string(resp.ToolCalls[0].Arguments))

	s.Require().NotNil(s.received)
	s.Equal("test-model", s.received.Model)
	s.Equal("required", s.received.ToolChoice)
	s.Require().Len(s.received.Messages, 2)
	s.Equal("system", s.received.Messages[0].Role)
	s.Equal("user", s.received.Messages[1].Role)
	s.Require().Len(s.received.Tools, 1)
	s.Equal("function", s.received.Tools[0].Type)
	s.Equal("get_weather", s.received.Tools[0].Function.Name)
	s.Contains(string(s.received.Tools[0].Function.Parameters), `"imperial"`)
}

func (s *OpenAIClientTestSuite) TestInvokeReturnsTextWithoutToolCalls() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":" sunny "}}]}`)
	}

	resp, err := s.client.Invoke(context.Background(), &Request{Messages: []Message{UserMessage("hi")}})
	s.Require().NoError(err)
	s.Empty(resp.ToolCalls)
	s.Equal("sunny", resp.Text)
	s.Empty(s.received.ToolChoice)
}

func (s *OpenAIClientTestSuite) TestInvokeServerErrorIsUnavailable() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `overloaded`)
	}

	_, err := s.client.Invoke(context.Background(), &Request{Tools: []*schema.Tool{s.tool}})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
	s.Contains(err.Error(), "503")
}

func (s *OpenAIClientTestSuite) TestInvokeBadRequestIsInternal() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"bad schema"}}`)
	}

	_, err := s.client.Invoke(context.Background(), &Request{Tools: []*schema.Tool{s.tool}})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *OpenAIClientTestSuite) TestInvokeNilRequest() {
	_, err := s.client.Invoke(context.Background(), nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestOpenAIClientTestSuite(t *testing.T) {
	suite.Run(t, new(OpenAIClientTestSuite))
}
