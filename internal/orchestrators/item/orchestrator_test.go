package item_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-forge/internal/clients/llm"
	llmmock "github.com/KirkDiggler/rpg-forge/internal/clients/llm/mock"
	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/generation"
	itemorch "github.com/KirkDiggler/rpg-forge/internal/orchestrators/item"
	"github.com/KirkDiggler/rpg-forge/internal/prompts"
	itemrepo "github.com/KirkDiggler/rpg-forge/internal/repositories/item"
	itemrepomock "github.com/KirkDiggler/rpg-forge/internal/repositories/item/mock"
	"github.com/KirkDiggler/rpg-forge/internal/services/item"
	"github.com/KirkDiggler/rpg-forge/internal/testutils/builders"
)

const testOwner = "user_123"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *itemrepomock.MockRepository
	mockLLM      *llmmock.MockClient
	orchestrator *itemorch.Orchestrator
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = itemrepomock.NewMockRepository(s.ctrl)
	s.mockLLM = llmmock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	o, err := itemorch.New(&itemorch.Config{
		ItemRepo:      s.mockRepo,
		LLM:           s.mockLLM,
		RetryInterval: time.Millisecond,
	})
	s.Require().NoError(err)
	s.orchestrator = o
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) toolCall(name string, args any) llm.ToolCall {
	data, err := json.Marshal(args)
	s.Require().NoError(err)
	return llm.ToolCall{Name: name, Arguments: data}
}

func (s *OrchestratorTestSuite) stored(id int64, i *entities.Item) *entities.ItemRecord {
	return &entities.ItemRecord{
		RecordMeta: entities.RecordMeta{ID: id, OwnerID: testOwner, Version: 1},
		Item:       i,
	}
}

func (s *OrchestratorTestSuite) TestNewValidation() {
	_, err := itemorch.New(&itemorch.Config{ItemRepo: s.mockRepo})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "LLM")
}

func (s *OrchestratorTestSuite) TestGenerate() {
	want := builders.NewItemBuilder().Build()

	s.mockLLM.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.Request) (*llm.Response, error) {
			s.Equal(prompts.MustSystemPrompt(prompts.ItemGenerate), req.System)
			s.Len(req.Tools, 2)
			return &llm.Response{ToolCalls: []llm.ToolCall{
				s.toolCall(itemorch.ToolSetItemBase, want.ItemBase),
				s.toolCall(itemorch.ToolSetItemDescriptions, map[string]any{"descriptions": want.Descriptions}),
			}}, nil
		})
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input itemrepo.CreateInput) (*itemrepo.CreateOutput, error) {
			s.Equal(testOwner, input.OwnerID)
			s.Equal(want, input.Item)
			return &itemrepo.CreateOutput{Record: s.stored(9, input.Item)}, nil
		})

	out, err := s.orchestrator.Generate(s.ctx, &item.GenerateInput{OwnerID: testOwner, Prompt: "a sea trident"})
	s.Require().NoError(err)
	s.Equal(int64(9), out.Record.ID)
}

func (s *OrchestratorTestSuite) TestGenerateExhaustsAttempts() {
	bad := builders.NewItemBuilder().WithMagic(false, 1).Build()

	s.mockLLM.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		Return(&llm.Response{ToolCalls: []llm.ToolCall{
			s.toolCall(itemorch.ToolSetItemBase, bad.ItemBase),
		}}, nil).
		Times(generation.MaxAttempts)

	_, err := s.orchestrator.Generate(s.ctx, &item.GenerateInput{OwnerID: testOwner, Prompt: "a sea trident"})
	s.Require().Error(err)
	s.Equal("unable to generate item", errors.GetMessage(err))
}

func (s *OrchestratorTestSuite) TestGenerateFanOut() {
	o, err := itemorch.New(&itemorch.Config{
		ItemRepo:      s.mockRepo,
		LLM:           s.mockLLM,
		FanOut:        true,
		RetryInterval: time.Millisecond,
	})
	s.Require().NoError(err)
	want := builders.NewItemBuilder().Build()

	s.mockLLM.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.Request) (*llm.Response, error) {
			s.Require().Len(req.Tools, 1)
			if req.Tools[0].Name == itemorch.ToolSetItemBase {
				return &llm.Response{ToolCalls: []llm.ToolCall{s.toolCall(itemorch.ToolSetItemBase, want.ItemBase)}}, nil
			}
			return &llm.Response{ToolCalls: []llm.ToolCall{
				s.toolCall(itemorch.ToolSetItemDescriptions, map[string]any{"descriptions": want.Descriptions}),
			}}, nil
		}).
		Times(2)
	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input itemrepo.CreateInput) (*itemrepo.CreateOutput, error) {
			s.Equal(want, input.Item)
			return &itemrepo.CreateOutput{Record: s.stored(1, input.Item)}, nil
		})

	_, err = o.Generate(s.ctx, &item.GenerateInput{OwnerID: testOwner, Prompt: "a sea trident"})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestUpdateStoredItem() {
	current := builders.NewItemBuilder().Build()
	curse := entities.ItemDescription{Label: "Curse", Text: "The wielder cannot swim."}

	s.mockRepo.EXPECT().Get(s.ctx, itemrepo.GetInput{ID: 9}).
		Return(&itemrepo.GetOutput{Record: s.stored(9, current)}, nil)
	s.mockLLM.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.Request) (*llm.Response, error) {
			s.Equal(prompts.MustSystemPrompt(prompts.ItemUpdate), req.System)
			s.Require().Len(req.Messages, 2)
			s.Contains(req.Messages[0].Content, "Tidecaller Trident")
			return &llm.Response{ToolCalls: []llm.ToolCall{
				s.toolCall(itemorch.ToolSetItemDescriptions, map[string]any{"descriptions": []entities.ItemDescription{curse}}),
			}}, nil
		})
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input itemrepo.UpdateInput) (*itemrepo.UpdateOutput, error) {
			s.Equal(int64(9), input.ID)
			s.Equal(append(current.Descriptions, curse), input.Item.Descriptions)
			rec := s.stored(9, input.Item)
			rec.Version = 2
			return &itemrepo.UpdateOutput{Record: rec}, nil
		})

	out, err := s.orchestrator.Update(s.ctx, &item.UpdateInput{OwnerID: testOwner, ID: 9, Prompt: "curse it"})
	s.Require().NoError(err)
	s.Equal(2, out.Record.Version)
}

func (s *OrchestratorTestSuite) TestUpdateUnsavedItem() {
	current := builders.NewItemBuilder().Build()
	base := current.ItemBase
	base.Rarity = entities.RarityRare

	s.mockLLM.EXPECT().Invoke(gomock.Any(), gomock.Any()).
		Return(&llm.Response{ToolCalls: []llm.ToolCall{s.toolCall(itemorch.ToolSetItemBase, base)}}, nil)

	out, err := s.orchestrator.Update(s.ctx, &item.UpdateInput{OwnerID: testOwner, Prompt: "make it rare", Item: current})
	s.Require().NoError(err)
	s.Equal(int64(0), out.Record.ID)
	s.Equal(entities.RarityRare, out.Record.Item.Rarity)
	s.Equal(current.Descriptions, out.Record.Item.Descriptions)
}

func (s *OrchestratorTestSuite) TestUpdateRejectsInvalidUnsavedItem() {
	_, err := s.orchestrator.Update(s.ctx, &item.UpdateInput{
		OwnerID: testOwner,
		Prompt:  "make it rare",
		Item:    builders.NewItemBuilder().WithName("").Build(),
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetOtherOwnersItem() {
	rec := s.stored(9, builders.NewItemBuilder().Build())
	rec.OwnerID = "someone_else"
	s.mockRepo.EXPECT().Get(s.ctx, itemrepo.GetInput{ID: 9}).Return(&itemrepo.GetOutput{Record: rec}, nil)

	_, err := s.orchestrator.Get(s.ctx, &item.GetInput{OwnerID: testOwner, ID: 9})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListRequiresOwner() {
	_, err := s.orchestrator.List(s.ctx, &item.ListInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDelete() {
	s.mockRepo.EXPECT().Get(s.ctx, itemrepo.GetInput{ID: 9}).
		Return(&itemrepo.GetOutput{Record: s.stored(9, builders.NewItemBuilder().Build())}, nil)
	s.mockRepo.EXPECT().Delete(s.ctx, itemrepo.DeleteInput{ID: 9}).Return(&itemrepo.DeleteOutput{}, nil)

	_, err := s.orchestrator.Delete(s.ctx, &item.DeleteInput{OwnerID: testOwner, ID: 9})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestRenderStatBlockVersion() {
	s.mockRepo.EXPECT().Get(s.ctx, itemrepo.GetInput{ID: 9}).
		Return(&itemrepo.GetOutput{Record: s.stored(9, builders.NewItemBuilder().Build())}, nil)
	s.mockRepo.EXPECT().GetVersion(s.ctx, itemrepo.GetVersionInput{ID: 9, Version: 1}).
		Return(&itemrepo.GetVersionOutput{Record: s.stored(9, builders.NewItemBuilder().Build())}, nil)

	out, err := s.orchestrator.RenderStatBlock(s.ctx, &item.RenderStatBlockInput{OwnerID: testOwner, ID: 9, Version: 1})
	s.Require().NoError(err)
	s.Equal("Tidecaller Trident", out.Block.Name)
	s.Contains(out.Markdown, "## Tidecaller Trident")
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
