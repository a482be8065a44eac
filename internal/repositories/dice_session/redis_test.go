package dicesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/clock"
	dicesession "github.com/KirkDiggler/rpg-forge/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-forge/internal/testutils"
)

type RedisDiceSessionTestSuite struct {
	suite.Suite
	ctx     context.Context
	mr      *miniredis.Miniredis
	clock   *clock.Fixed
	repo    dicesession.Repository
	cleanup func()
}

func (s *RedisDiceSessionTestSuite) SetupTest() {
	s.ctx = context.Background()
	client, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.clock = clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	repo, err := dicesession.NewRedisRepository(&dicesession.Config{Client: client, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisDiceSessionTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisDiceSessionTestSuite) TestCreateSetsTTL() {
	out, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "creature:1",
		Context:  "hit_points",
		Rolls:    []dicesession.DiceRoll{{RollID: "roll_1", Notation: "2d6", Dice: []int{3, 4}, DiceTotal: 7, Total: 7}},
	})
	s.Require().NoError(err)
	s.Equal(s.clock.Now().Add(15*time.Minute), out.Session.ExpiresAt)

	s.True(s.mr.Exists("dice_session:creature:1:hit_points"))
	s.Equal(15*time.Minute, s.mr.TTL("dice_session:creature:1:hit_points"))
}

func (s *RedisDiceSessionTestSuite) TestGet() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "creature:1",
		Context:  "hit_points",
		Rolls:    []dicesession.DiceRoll{{RollID: "roll_1", Notation: "2d6+1", Dice: []int{3, 4}, DiceTotal: 7, Modifier: 1, Total: 8}},
	})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "creature:1", Context: "hit_points"})
	s.Require().NoError(err)
	s.Require().Len(got.Session.Rolls, 1)
	s.Equal([]int{3, 4}, got.Session.Rolls[0].Dice)
	s.Equal(8, got.Session.Rolls[0].Total)
}

func (s *RedisDiceSessionTestSuite) TestGetExpired() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "creature:1", Context: "hit_points", TTL: time.Hour})
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)
	_, err = s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "creature:1", Context: "hit_points"})
	s.True(errors.IsNotFound(err))
	s.False(s.mr.Exists("dice_session:creature:1:hit_points"))
}

func (s *RedisDiceSessionTestSuite) TestGetValidation() {
	_, err := s.repo.Get(s.ctx, dicesession.GetInput{Context: "hit_points"})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "creature:1"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisDiceSessionTestSuite) TestUpdateKeepsExpiry() {
	created, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "creature:1", Context: "damage"})
	s.Require().NoError(err)

	s.clock.Advance(5 * time.Minute)
	session := created.Session
	session.Rolls = append(session.Rolls, dicesession.DiceRoll{RollID: "roll_2", Notation: "1d4", Dice: []int{2}, DiceTotal: 2, Total: 2})
	s.Require().NoError(s.repo.Update(s.ctx, session))

	s.Equal(10*time.Minute, s.mr.TTL("dice_session:creature:1:damage"))

	s.clock.Advance(time.Hour)
	s.True(errors.IsInvalidArgument(s.repo.Update(s.ctx, session)))
}

func (s *RedisDiceSessionTestSuite) TestDeleteCountsRolls() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "creature:1",
		Context:  "damage",
		Rolls:    []dicesession.DiceRoll{{RollID: "a"}, {RollID: "b"}},
	})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "creature:1", Context: "damage"})
	s.Require().NoError(err)
	s.Equal(2, out.RollsDeleted)

	out, err = s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "creature:1", Context: "damage"})
	s.Require().NoError(err)
	s.Equal(0, out.RollsDeleted)
}

func TestRedisDiceSessionTestSuite(t *testing.T) {
	suite.Run(t, new(RedisDiceSessionTestSuite))
}
