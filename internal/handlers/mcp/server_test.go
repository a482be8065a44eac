package mcp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	forgemcp "github.com/KirkDiggler/rpg-forge/internal/handlers/mcp"
	"github.com/KirkDiggler/rpg-forge/internal/services/creature"
	creaturemock "github.com/KirkDiggler/rpg-forge/internal/services/creature/mock"
	"github.com/KirkDiggler/rpg-forge/internal/services/item"
	itemmock "github.com/KirkDiggler/rpg-forge/internal/services/item/mock"
	"github.com/KirkDiggler/rpg-forge/internal/testutils/builders"
)

const testOwner = "local"

type ServerTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockCreature *creaturemock.MockService
	mockItem     *itemmock.MockService
	ctx          context.Context
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCreature = creaturemock.NewMockService(s.ctrl)
	s.mockItem = itemmock.NewMockService(s.ctrl)
	s.ctx = context.Background()
}

func (s *ServerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServerTestSuite) TestNewServer() {
	server, err := forgemcp.NewServer(&forgemcp.Config{
		CreatureService: s.mockCreature,
		ItemService:     s.mockItem,
		OwnerID:         testOwner,
	})
	s.Require().NoError(err)
	s.NotNil(server)
}

func (s *ServerTestSuite) TestNewServerValidation() {
	_, err := forgemcp.NewServer(&forgemcp.Config{CreatureService: s.mockCreature, ItemService: s.mockItem})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ServerTestSuite) TestGenerateCreature() {
	s.mockCreature.EXPECT().
		Generate(s.ctx, &creature.GenerateInput{OwnerID: testOwner, Prompt: "a bog warden"}).
		Return(&creature.GenerateOutput{Record: &entities.CreatureRecord{
			RecordMeta: entities.RecordMeta{ID: 3, OwnerID: testOwner, Version: 1},
			Creature:   builders.NewCreatureBuilder().Build(),
		}}, nil)

	handler := forgemcp.GenerateCreatureHandler(s.mockCreature, testOwner)
	_, result, err := handler(s.ctx, nil, forgemcp.GenerateCreatureInput{Prompt: "a bog warden"})
	s.Require().NoError(err)
	s.Equal(int64(3), result.ID)
	s.Equal(1, result.Version)
	s.Contains(result.Markdown, "## Bog Warden")
}

func (s *ServerTestSuite) TestGenerateCreatureError() {
	s.mockCreature.EXPECT().
		Generate(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("unable to generate creature"))

	handler := forgemcp.GenerateCreatureHandler(s.mockCreature, testOwner)
	_, _, err := handler(s.ctx, nil, forgemcp.GenerateCreatureInput{Prompt: "a bog warden"})
	s.Require().Error(err)
	s.Equal("unable to generate creature", errors.GetMessage(err))
}

func (s *ServerTestSuite) TestUpdateUnsavedCreature() {
	c := builders.NewCreatureBuilder().Build()
	s.mockCreature.EXPECT().
		Update(s.ctx, &creature.UpdateInput{OwnerID: testOwner, Prompt: "bigger", Creature: c}).
		Return(&creature.UpdateOutput{Record: &entities.CreatureRecord{Creature: c}}, nil)

	handler := forgemcp.UpdateCreatureHandler(s.mockCreature, testOwner)
	_, result, err := handler(s.ctx, nil, forgemcp.UpdateCreatureInput{Prompt: "bigger", Creature: c})
	s.Require().NoError(err)
	s.Equal(int64(0), result.ID)
	s.Same(c, result.Creature)
}

func (s *ServerTestSuite) TestRenderCreature() {
	s.mockCreature.EXPECT().
		RenderStatBlock(s.ctx, &creature.RenderStatBlockInput{OwnerID: testOwner, ID: 3, Version: 2}).
		Return(&creature.RenderStatBlockOutput{Markdown: "## Bog Warden"}, nil)

	handler := forgemcp.RenderCreatureHandler(s.mockCreature, testOwner)
	_, result, err := handler(s.ctx, nil, forgemcp.RenderCreatureInput{ID: 3, Version: 2})
	s.Require().NoError(err)
	s.Equal("## Bog Warden", result.Markdown)
}

func (s *ServerTestSuite) TestGenerateItem() {
	s.mockItem.EXPECT().
		Generate(s.ctx, &item.GenerateInput{OwnerID: testOwner, Prompt: "a trident"}).
		Return(&item.GenerateOutput{Record: &entities.ItemRecord{
			RecordMeta: entities.RecordMeta{ID: 8, OwnerID: testOwner, Version: 1},
			Item:       builders.NewItemBuilder().Build(),
		}}, nil)

	handler := forgemcp.GenerateItemHandler(s.mockItem, testOwner)
	_, result, err := handler(s.ctx, nil, forgemcp.GenerateItemInput{Prompt: "a trident"})
	s.Require().NoError(err)
	s.Equal(int64(8), result.ID)
	s.Contains(result.Markdown, "## Tidecaller Trident")
}

func (s *ServerTestSuite) TestUpdateStoredItem() {
	s.mockItem.EXPECT().
		Update(s.ctx, &item.UpdateInput{OwnerID: testOwner, Prompt: "curse it", ID: 8}).
		Return(&item.UpdateOutput{Record: &entities.ItemRecord{
			RecordMeta: entities.RecordMeta{ID: 8, OwnerID: testOwner, Version: 2},
			Item:       builders.NewItemBuilder().Build(),
		}}, nil)

	handler := forgemcp.UpdateItemHandler(s.mockItem, testOwner)
	_, result, err := handler(s.ctx, nil, forgemcp.UpdateItemInput{Prompt: "curse it", ID: 8})
	s.Require().NoError(err)
	s.Equal(2, result.Version)
}

func (s *ServerTestSuite) TestRenderItemNotFound() {
	s.mockItem.EXPECT().
		RenderStatBlock(s.ctx, &item.RenderStatBlockInput{OwnerID: testOwner, ID: 99}).
		Return(nil, errors.NotFound("item 99 not found"))

	handler := forgemcp.RenderItemHandler(s.mockItem, testOwner)
	_, _, err := handler(s.ctx, nil, forgemcp.RenderItemInput{ID: 99})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}
