package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-forge/internal/redis"
)

type ClientTestSuite struct {
	suite.Suite
	mr *miniredis.Miniredis
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
}

func (s *ClientTestSuite) TestNewClientRequiresEndpoint() {
	client, err := redis.NewClient("", nil)
	s.Assert().Error(err)
	s.Assert().Nil(client)
}

func (s *ClientTestSuite) TestNewClientPing() {
	client, err := redis.NewClient(s.mr.Addr(), &redis.Options{PoolSize: 2})
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()

	s.Assert().NoError(redis.Ping(context.Background(), client, time.Second))
}

func (s *ClientTestSuite) TestNewClientFromURL() {
	client, err := redis.NewClientFromURL("redis://" + s.mr.Addr() + "/0")
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	s.Require().NoError(client.Set(ctx, "k", "v", 0).Err())

	_, err = client.Get(ctx, "missing").Result()
	s.Assert().ErrorIs(err, redis.Nil)
}

func (s *ClientTestSuite) TestNewClientFromURLInvalid() {
	_, err := redis.NewClientFromURL("http://nope")
	s.Assert().Error(err)

	_, err = redis.NewClientFromURL("")
	s.Assert().Error(err)
}
