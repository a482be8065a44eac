package creature_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-forge/internal/repositories/creature"
	"github.com/KirkDiggler/rpg-forge/internal/testutils"
	"github.com/KirkDiggler/rpg-forge/internal/testutils/builders"
)

type RedisCreatureTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    creature.Repository
	cleanup func()
}

func (s *RedisCreatureTestSuite) SetupTest() {
	s.ctx = context.Background()
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := creature.NewRedis(&creature.Config{
		Client: client,
		Clock:  clock.NewFixed(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisCreatureTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisCreatureTestSuite) TestNewRedis() {
	testCases := []struct {
		name   string
		config *creature.Config
		errMsg string
	}{
		{name: "nil config", config: nil, errMsg: "config cannot be nil"},
		{name: "nil client", config: &creature.Config{}, errMsg: "client cannot be nil"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := creature.NewRedis(tc.config)
			s.Require().Error(err)
			s.Nil(repo)
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *RedisCreatureTestSuite) TestCreateAndGetRoundTrip() {
	c := builders.NewCreatureBuilder().WithName("Ash Wraith").Build()

	created, err := s.repo.Create(s.ctx, creature.CreateInput{OwnerID: "user_1", Creature: c})
	s.Require().NoError(err)
	s.Equal(int64(1), created.Record.ID)
	s.Equal(1, created.Record.Version)

	got, err := s.repo.Get(s.ctx, creature.GetInput{ID: created.Record.ID})
	s.Require().NoError(err)
	s.Equal("user_1", got.Record.OwnerID)
	if diff := cmp.Diff(c, got.Record.Creature); diff != "" {
		s.Failf("creature mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *RedisCreatureTestSuite) TestCreateNilCreature() {
	_, err := s.repo.Create(s.ctx, creature.CreateInput{OwnerID: "user_1"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisCreatureTestSuite) TestUpdateAndVersions() {
	created, err := s.repo.Create(s.ctx, creature.CreateInput{
		OwnerID:  "user_1",
		Creature: builders.NewCreatureBuilder().WithName("Ash Wraith").Build(),
	})
	s.Require().NoError(err)

	updated, err := s.repo.Update(s.ctx, creature.UpdateInput{
		ID:       created.Record.ID,
		Creature: builders.NewCreatureBuilder().WithName("Greater Ash Wraith").WithChallengeRating(9).Build(),
	})
	s.Require().NoError(err)
	s.Equal(2, updated.Record.Version)
	s.Equal("user_1", updated.Record.OwnerID)

	v1, err := s.repo.GetVersion(s.ctx, creature.GetVersionInput{ID: created.Record.ID, Version: 1})
	s.Require().NoError(err)
	s.Equal("Ash Wraith", v1.Record.Creature.Name)

	current, err := s.repo.Get(s.ctx, creature.GetInput{ID: created.Record.ID})
	s.Require().NoError(err)
	s.Equal("Greater Ash Wraith", current.Record.Creature.Name)
	s.Equal(9.0, current.Record.Creature.ChallengeRating)
}

func (s *RedisCreatureTestSuite) TestDeleteAndList() {
	for _, name := range []string{"Ash Wraith", "Bog Hag"} {
		_, err := s.repo.Create(s.ctx, creature.CreateInput{
			OwnerID:  "user_1",
			Creature: builders.NewCreatureBuilder().WithName(name).Build(),
		})
		s.Require().NoError(err)
	}

	_, err := s.repo.Delete(s.ctx, creature.DeleteInput{ID: 1})
	s.Require().NoError(err)

	list, err := s.repo.ListByOwner(s.ctx, creature.ListByOwnerInput{OwnerID: "user_1"})
	s.Require().NoError(err)
	s.Require().Len(list.Records, 1)
	s.Equal("Bog Hag", list.Records[0].Creature.Name)

	_, err = s.repo.Get(s.ctx, creature.GetInput{ID: 1})
	s.True(errors.IsNotFound(err))
}

func TestRedisCreatureTestSuite(t *testing.T) {
	suite.Run(t, new(RedisCreatureTestSuite))
}
