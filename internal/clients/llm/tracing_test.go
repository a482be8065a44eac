package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-forge/internal/clients/llm"
	llmmock "github.com/KirkDiggler/rpg-forge/internal/clients/llm/mock"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

type TracingClientTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	next     *llmmock.MockClient
	recorder *tracetest.SpanRecorder
	client   llm.Client
}

func (s *TracingClientTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.next = llmmock.NewMockClient(s.ctrl)
	s.recorder = tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.recorder))
	s.client = llm.WithTracing(s.next, llm.ProviderOpenAI, provider.Tracer("test"))
}

func (s *TracingClientTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TracingClientTestSuite) TestRecordsSpan() {
	req := &llm.Request{Messages: []llm.Message{llm.UserMessage("hi")}}
	s.next.EXPECT().Invoke(gomock.Any(), req).Return(&llm.Response{
		ToolCalls: []llm.ToolCall{{Name: "a"}, {Name: "b"}},
	}, nil)

	resp, err := s.client.Invoke(context.Background(), req)
	s.Require().NoError(err)
	s.Len(resp.ToolCalls, 2)

	spans := s.recorder.Ended()
	s.Require().Len(spans, 1)
	s.Equal("llm.invoke", spans[0].Name())
	s.NotEqual(otelcodes.Error, spans[0].Status().Code)
}

func (s *TracingClientTestSuite) TestRecordsError() {
	s.next.EXPECT().Invoke(gomock.Any(), gomock.Any()).Return(nil, errors.Unavailable("down"))

	_, err := s.client.Invoke(context.Background(), &llm.Request{})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))

	spans := s.recorder.Ended()
	s.Require().Len(spans, 1)
	s.Equal(otelcodes.Error, spans[0].Status().Code)
}

func TestTracingClientTestSuite(t *testing.T) {
	suite.Run(t, new(TracingClientTestSuite))
}
