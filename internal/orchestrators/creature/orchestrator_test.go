package creature_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-forge/internal/clients/external"
	externalmock "github.com/KirkDiggler/rpg-forge/internal/clients/external/mock"
	"github.com/KirkDiggler/rpg-forge/internal/clients/llm"
	llmmock "github.com/KirkDiggler/rpg-forge/internal/clients/llm/mock"
	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/generation"
	"github.com/KirkDiggler/rpg-forge/internal/orchestrators/dice"
	dicemock "github.com/KirkDiggler/rpg-forge/internal/orchestrators/dice/mock"
	creatureorch "github.com/KirkDiggler/rpg-forge/internal/orchestrators/creature"
	"github.com/KirkDiggler/rpg-forge/internal/prompts"
	creaturerepo "github.com/KirkDiggler/rpg-forge/internal/repositories/creature"
	creaturerepomock "github.com/KirkDiggler/rpg-forge/internal/repositories/creature/mock"
	dicesession "github.com/KirkDiggler/rpg-forge/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-forge/internal/services/creature"
	"github.com/KirkDiggler/rpg-forge/internal/testutils/builders"
)

const testOwner = "user_123"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *creaturerepomock.MockRepository
	mockLLM      *llmmock.MockClient
	mockDice     *dicemock.MockService
	mockExternal *externalmock.MockClient
	orchestrator *creatureorch.Orchestrator
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = creaturerepomock.NewMockRepository(s.ctrl)
	s.mockLLM = llmmock.NewMockClient(s.ctrl)
	s.mockDice = dicemock.NewMockService(s.ctrl)
	s.mockExternal = externalmock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	o, err := creatureorch.New(&creatureorch.Config{
		CreatureRepo:   s.mockRepo,
		LLM:            s.mockLLM,
		DiceService:    s.mockDice,
		ExternalClient: s.mockExternal,
		RetryInterval:  time.Millisecond,
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

// sectionCalls splits a creature into the tool calls that would build it
func (s *OrchestratorTestSuite) sectionCalls(c *entities.Creature) []llm.ToolCall {
	return []llm.ToolCall{
		s.toolCall(creatureorch.ToolSetBaseStats, c.CreatureBase),
		s.toolCall(creatureorch.ToolSetTraits, map[string]any{"traits": c.Traits}),
		s.toolCall(creatureorch.ToolSetAttacks, c.Actions),
	}
}

func (s *OrchestratorTestSuite) stored(id int64, c *entities.Creature) *entities.CreatureRecord {
	return &entities.CreatureRecord{
		RecordMeta: entities.RecordMeta{ID: id, OwnerID: testOwner, Version: 1},
		Creature:   c,
	}
}

func (s *OrchestratorTestSuite) TestNewValidation() {
	_, err := creatureorch.New(&creatureorch.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "CreatureRepo")
}

func (s *OrchestratorTestSuite) TestGenerate() {
	want := builders.NewCreatureBuilder().Build()

	s.mockLLM.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.Request) (*llm.Response, error) {
			s.Equal(prompts.MustSystemPrompt(prompts.CreatureGenerate), req.System)
			s.Require().Len(req.Messages, 1)
			s.Equal("a warden of drowned shrines", req.Messages[0].Content)
			s.Len(req.Tools, 6)
			return &llm.Response{ToolCalls: s.sectionCalls(want)}, nil
		})
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input creaturerepo.CreateInput) (*creaturerepo.CreateOutput, error) {
			s.Equal(testOwner, input.OwnerID)
			if diff := cmp.Diff(want, input.Creature); diff != "" {
				s.Failf("creature mismatch", "(-want +got):\n%s", diff)
			}
			return &creaturerepo.CreateOutput{Record: s.stored(1, input.Creature)}, nil
		})

	out, err := s.orchestrator.Generate(s.ctx, &creature.GenerateInput{
		OwnerID: testOwner,
		Prompt:  "a warden of drowned shrines",
	})
	s.Require().NoError(err)
	s.Equal(int64(1), out.Record.ID)
	s.Equal("Bog Warden", out.Record.Creature.Name)
}

func (s *OrchestratorTestSuite) TestGenerateRetriesUntilValid() {
	want := builders.NewCreatureBuilder().Build()
	calls := s.sectionCalls(want)

	gomock.InOrder(
		s.mockLLM.EXPECT().Invoke(gomock.Any(), gomock.Any()).
			Return(&llm.Response{ToolCalls: calls[1:]}, nil),
		s.mockLLM.EXPECT().Invoke(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *llm.Request) (*llm.Response, error) {
				s.Require().Len(req.Messages, 2)
				s.Contains(req.Messages[1].Content, "The previous answer was rejected")
				s.Contains(req.Messages[1].Content, creatureorch.ToolSetBaseStats)
				return &llm.Response{ToolCalls: calls}, nil
			}),
	)
	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input creaturerepo.CreateInput) (*creaturerepo.CreateOutput, error) {
			return &creaturerepo.CreateOutput{Record: s.stored(1, input.Creature)}, nil
		})

	_, err := s.orchestrator.Generate(s.ctx, &creature.GenerateInput{OwnerID: testOwner, Prompt: "a warden"})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestGenerateExhaustsAttempts() {
	withoutBase := s.sectionCalls(builders.NewCreatureBuilder().Build())[1:]

	s.mockLLM.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		Return(&llm.Response{ToolCalls: withoutBase}, nil).
		Times(generation.MaxAttempts)

	_, err := s.orchestrator.Generate(s.ctx, &creature.GenerateInput{OwnerID: testOwner, Prompt: "a warden"})
	s.Require().Error(err)
	s.Contains(errors.GetMessage(err), "unable to generate creature")
	s.Equal(generation.KindValidation, generation.KindOf(err))
}

func (s *OrchestratorTestSuite) TestGenerateValidation() {
	testCases := []struct {
		name  string
		input *creature.GenerateInput
	}{
		{name: "nil input", input: nil},
		{name: "missing owner", input: &creature.GenerateInput{Prompt: "a warden"}},
		{name: "blank prompt", input: &creature.GenerateInput{OwnerID: testOwner, Prompt: "  "}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.Generate(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestUpdateStoredCreature() {
	current := builders.NewCreatureBuilder().Build()
	hook := current.Actions.Attacks[0]
	hook.Targets = 2
	bite := entities.Attack{
		Name:    "Bite",
		Kind:    entities.AttackKindMelee,
		Ability: entities.AbilityStrength,
		Reach:   5,
		Targets: 1,
		Damage:  []entities.Damage{{DiceCount: 1, DieSize: 8, DamageType: entities.DamageTypePiercing}},
	}

	s.mockRepo.EXPECT().
		Get(s.ctx, creaturerepo.GetInput{ID: 7}).
		Return(&creaturerepo.GetOutput{Record: s.stored(7, current)}, nil)
	s.mockLLM.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.Request) (*llm.Response, error) {
			s.Equal(prompts.MustSystemPrompt(prompts.CreatureUpdate), req.System)
			s.Require().Len(req.Messages, 2)
			s.Contains(req.Messages[0].Content, `"name": "Bog Warden"`)
			s.Equal("give it a bite", req.Messages[1].Content)
			return &llm.Response{ToolCalls: []llm.ToolCall{
				s.toolCall(creatureorch.ToolSetAttacks, entities.Actions{
					Attacks:            []entities.Attack{hook, bite},
					SavingThrowAttacks: []entities.SavingThrowAttack{},
					SpecialActions:     []entities.SpecialAction{},
				}),
			}}, nil
		})
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input creaturerepo.UpdateInput) (*creaturerepo.UpdateOutput, error) {
			s.Equal(int64(7), input.ID)
			s.Equal([]entities.Attack{hook, bite}, input.Creature.Actions.Attacks)
			s.Equal(current.Traits, input.Creature.Traits)
			rec := s.stored(7, input.Creature)
			rec.Version = 2
			return &creaturerepo.UpdateOutput{Record: rec}, nil
		})

	out, err := s.orchestrator.Update(s.ctx, &creature.UpdateInput{
		OwnerID: testOwner,
		ID:      7,
		Prompt:  "give it a bite",
	})
	s.Require().NoError(err)
	s.Equal(2, out.Record.Version)
}

func (s *OrchestratorTestSuite) TestUpdateUnsavedCreature() {
	current := builders.NewCreatureBuilder().Build()
	renamed := current.CreatureBase
	renamed.Name = "Drowned Warden"

	s.mockLLM.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		Return(&llm.Response{ToolCalls: []llm.ToolCall{
			s.toolCall(creatureorch.ToolSetBaseStats, renamed),
		}}, nil)

	out, err := s.orchestrator.Update(s.ctx, &creature.UpdateInput{
		OwnerID:  testOwner,
		Prompt:   "rename it",
		Creature: current,
	})
	s.Require().NoError(err)
	s.Equal(int64(0), out.Record.ID)
	s.Equal("Drowned Warden", out.Record.Creature.Name)
	s.Equal(current.Actions.Attacks, out.Record.Creature.Actions.Attacks)
}

func (s *OrchestratorTestSuite) TestUpdateOtherOwnersCreature() {
	rec := s.stored(7, builders.NewCreatureBuilder().Build())
	rec.OwnerID = "someone_else"
	s.mockRepo.EXPECT().Get(s.ctx, creaturerepo.GetInput{ID: 7}).Return(&creaturerepo.GetOutput{Record: rec}, nil)

	_, err := s.orchestrator.Update(s.ctx, &creature.UpdateInput{OwnerID: testOwner, ID: 7, Prompt: "stronger"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestUpdateNeedsTarget() {
	_, err := s.orchestrator.Update(s.ctx, &creature.UpdateInput{OwnerID: testOwner, Prompt: "stronger"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetVersion() {
	c := builders.NewCreatureBuilder().Build()
	s.mockRepo.EXPECT().Get(s.ctx, creaturerepo.GetInput{ID: 3}).
		Return(&creaturerepo.GetOutput{Record: s.stored(3, c)}, nil)
	s.mockRepo.EXPECT().GetVersion(s.ctx, creaturerepo.GetVersionInput{ID: 3, Version: 1}).
		Return(&creaturerepo.GetVersionOutput{Record: s.stored(3, c)}, nil)

	out, err := s.orchestrator.GetVersion(s.ctx, &creature.GetVersionInput{OwnerID: testOwner, ID: 3, Version: 1})
	s.Require().NoError(err)
	s.Equal(1, out.Record.Version)
}

func (s *OrchestratorTestSuite) TestList() {
	s.mockRepo.EXPECT().ListByOwner(s.ctx, creaturerepo.ListByOwnerInput{OwnerID: testOwner}).
		Return(&creaturerepo.ListByOwnerOutput{Records: []*entities.CreatureRecord{
			s.stored(1, builders.NewCreatureBuilder().Build()),
		}}, nil)

	out, err := s.orchestrator.List(s.ctx, &creature.ListInput{OwnerID: testOwner})
	s.Require().NoError(err)
	s.Len(out.Records, 1)
}

func (s *OrchestratorTestSuite) TestDelete() {
	s.mockRepo.EXPECT().Get(s.ctx, creaturerepo.GetInput{ID: 3}).
		Return(&creaturerepo.GetOutput{Record: s.stored(3, builders.NewCreatureBuilder().Build())}, nil)
	s.mockRepo.EXPECT().Delete(s.ctx, creaturerepo.DeleteInput{ID: 3}).Return(&creaturerepo.DeleteOutput{}, nil)

	_, err := s.orchestrator.Delete(s.ctx, &creature.DeleteInput{OwnerID: testOwner, ID: 3})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestRenderStatBlockUnsaved() {
	out, err := s.orchestrator.RenderStatBlock(s.ctx, &creature.RenderStatBlockInput{
		Creature: builders.NewCreatureBuilder().Build(),
	})
	s.Require().NoError(err)
	s.Equal("52 (8d8 + 16)", out.Block.HitPoints)
	s.Contains(out.Markdown, "## Bog Warden")
}

func (s *OrchestratorTestSuite) TestRenderStatBlockRejectsInvalid() {
	_, err := s.orchestrator.RenderStatBlock(s.ctx, &creature.RenderStatBlockInput{
		Creature: builders.NewCreatureBuilder().WithName("").Build(),
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRollHitPoints() {
	s.mockRepo.EXPECT().Get(s.ctx, creaturerepo.GetInput{ID: 4}).
		Return(&creaturerepo.GetOutput{Record: s.stored(4, builders.NewCreatureBuilder().Build())}, nil)
	roll := &dicesession.DiceRoll{RollID: "roll_1", Notation: "8d8+16", Total: 50}
	s.mockDice.EXPECT().
		RollDice(s.ctx, &dice.RollDiceInput{
			EntityID:    "creature:4",
			Context:     dice.ContextHitPoints,
			Notation:    "8d8+16",
			Description: "Hit points for Bog Warden",
		}).
		Return(&dice.RollDiceOutput{Roll: roll}, nil)

	out, err := s.orchestrator.RollHitPoints(s.ctx, &creature.RollHitPointsInput{OwnerID: testOwner, ID: 4})
	s.Require().NoError(err)
	s.Equal("8d8+16", out.Notation)
	s.Equal(52, out.Average)
	s.Same(roll, out.Roll)
}

func (s *OrchestratorTestSuite) TestLookupSpellsWithoutSpellcasting() {
	s.mockRepo.EXPECT().Get(s.ctx, creaturerepo.GetInput{ID: 4}).
		Return(&creaturerepo.GetOutput{Record: s.stored(4, builders.NewCreatureBuilder().Build())}, nil)

	out, err := s.orchestrator.LookupSpells(s.ctx, &creature.LookupSpellsInput{OwnerID: testOwner, ID: 4})
	s.Require().NoError(err)
	s.Empty(out.Spells)
	s.Empty(out.Unresolved)
}

func (s *OrchestratorTestSuite) TestLookupSpells() {
	c := builders.NewCreatureBuilder().WithSpellcasting(&entities.Spellcasting{
		Ability: entities.AbilityWisdom,
		AtWill:  []string{"Druidcraft"},
		Slots:   []entities.SpellSlotLevel{{Level: 1, Slots: 2, Spells: []string{"Fog Cloud", "Made Up Spell"}}},
	}).Build()
	s.mockRepo.EXPECT().Get(s.ctx, creaturerepo.GetInput{ID: 4}).
		Return(&creaturerepo.GetOutput{Record: s.stored(4, c)}, nil)
	s.mockExternal.EXPECT().
		LookupSpells(s.ctx, &external.LookupSpellsInput{Names: []string{"Druidcraft", "Fog Cloud", "Made Up Spell"}}).
		Return(&external.LookupSpellsOutput{
			Spells:     []*external.SpellData{{Key: "druidcraft", Name: "Druidcraft"}, {Key: "fog-cloud", Name: "Fog Cloud", Level: 1}},
			Unresolved: []string{"Made Up Spell"},
		}, nil)

	out, err := s.orchestrator.LookupSpells(s.ctx, &creature.LookupSpellsInput{OwnerID: testOwner, ID: 4})
	s.Require().NoError(err)
	s.Len(out.Spells, 2)
	s.Equal([]string{"Made Up Spell"}, out.Unresolved)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
