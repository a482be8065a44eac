package records_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-forge/internal/repositories/records"
	"github.com/KirkDiggler/rpg-forge/internal/testutils"
	"github.com/KirkDiggler/rpg-forge/internal/testutils/builders"
)

const testOwner = "user_123"

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	mr      *miniredis.Miniredis
	clock   *clock.Fixed
	store   *records.Store[*entities.ItemRecord]
	cleanup func()
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	client, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.clock = clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	store, err := records.NewStore(&records.Config[*entities.ItemRecord]{
		Client: client,
		Clock:  s.clock,
		New:    func() *entities.ItemRecord { return &entities.ItemRecord{} },
	})
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *StoreTestSuite) newRecord(name string) *entities.ItemRecord {
	return &entities.ItemRecord{
		RecordMeta: entities.RecordMeta{OwnerID: testOwner},
		Item:       builders.NewItemBuilder().WithName(name).Build(),
	}
}

func (s *StoreTestSuite) TestNewStoreValidation() {
	_, err := records.NewStore[*entities.ItemRecord](nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = records.NewStore(&records.Config[*entities.ItemRecord]{
		New: func() *entities.ItemRecord { return &entities.ItemRecord{} },
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "client cannot be nil")
}

func (s *StoreTestSuite) TestCreateAssignsSequentialIDs() {
	first, err := s.store.Create(s.ctx, s.newRecord("Sunblade"))
	s.Require().NoError(err)
	second, err := s.store.Create(s.ctx, s.newRecord("Moonblade"))
	s.Require().NoError(err)

	s.Equal(int64(1), first.ID)
	s.Equal(int64(2), second.ID)
	s.Equal(1, first.Version)
	s.True(first.CreatedAt.Equal(s.clock.Now()))
	s.True(first.UpdatedAt.Equal(s.clock.Now()))

	s.True(s.mr.Exists("item:1"))
	s.True(s.mr.Exists("item:2"))
	members, err := s.mr.SMembers("item:owner:" + testOwner)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"1", "2"}, members)
}

func (s *StoreTestSuite) TestCreateRequiresOwner() {
	rec := s.newRecord("Sunblade")
	rec.OwnerID = ""

	_, err := s.store.Create(s.ctx, rec)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *StoreTestSuite) TestGet() {
	created, err := s.store.Create(s.ctx, s.newRecord("Sunblade"))
	s.Require().NoError(err)

	got, err := s.store.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Sunblade", got.Item.Name)
	s.Equal(testOwner, got.OwnerID)
	s.Equal(1, got.Version)
}

func (s *StoreTestSuite) TestGetNotFound() {
	_, err := s.store.Get(s.ctx, 99)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.store.Get(s.ctx, 0)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *StoreTestSuite) TestUpdateKeepsHistory() {
	created, err := s.store.Create(s.ctx, s.newRecord("Sunblade"))
	s.Require().NoError(err)
	createdAt := created.CreatedAt

	s.clock.Advance(time.Hour)
	next := s.newRecord("Sunblade of Dawn")
	next.ID = created.ID
	next.OwnerID = "someone_else"

	updated, err := s.store.Update(s.ctx, next)
	s.Require().NoError(err)
	s.Equal(2, updated.Version)
	s.Equal(testOwner, updated.OwnerID)
	s.True(updated.CreatedAt.Equal(createdAt))
	s.True(updated.UpdatedAt.Equal(s.clock.Now()))

	current, err := s.store.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Sunblade of Dawn", current.Item.Name)

	v1, err := s.store.GetVersion(s.ctx, created.ID, 1)
	s.Require().NoError(err)
	s.Equal("Sunblade", v1.Item.Name)
	s.Equal(1, v1.Version)

	v2, err := s.store.GetVersion(s.ctx, created.ID, 2)
	s.Require().NoError(err)
	s.Equal("Sunblade of Dawn", v2.Item.Name)

	_, err = s.store.GetVersion(s.ctx, created.ID, 3)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.store.GetVersion(s.ctx, created.ID, 0)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *StoreTestSuite) TestUpdateMissing() {
	rec := s.newRecord("Sunblade")
	rec.ID = 7

	_, err := s.store.Update(s.ctx, rec)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *StoreTestSuite) TestConcurrentUpdatesKeepHistoryInStep() {
	created, err := s.store.Create(s.ctx, s.newRecord("Sunblade"))
	s.Require().NoError(err)

	const writers = 10
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := s.newRecord(fmt.Sprintf("Sunblade %d", i))
			next.ID = created.ID
			_, errs[i] = s.store.Update(s.ctx, next)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		s.Require().NoError(err)
	}

	current, err := s.store.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(writers+1, current.Version)

	history, err := s.mr.List("item:1:versions")
	s.Require().NoError(err)
	s.Len(history, writers)

	for v := 1; v <= current.Version; v++ {
		rec, err := s.store.GetVersion(s.ctx, created.ID, v)
		s.Require().NoError(err)
		s.Equal(v, rec.Version)
	}
}

func (s *StoreTestSuite) TestUpdateRacingDeleteLeavesNoRecord() {
	created, err := s.store.Create(s.ctx, s.newRecord("Sunblade"))
	s.Require().NoError(err)

	const writers = 5
	var wg sync.WaitGroup
	var deleteErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		deleteErr = s.store.Delete(s.ctx, created.ID)
	}()
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := s.newRecord(fmt.Sprintf("Sunblade %d", i))
			next.ID = created.ID
			if _, err := s.store.Update(s.ctx, next); err != nil {
				s.True(errors.IsNotFound(err))
			}
		}()
	}
	wg.Wait()

	s.Require().NoError(deleteErr)
	s.False(s.mr.Exists("item:1"))
	s.False(s.mr.Exists("item:1:versions"))

	_, err = s.store.Update(s.ctx, &entities.ItemRecord{
		RecordMeta: entities.RecordMeta{ID: created.ID},
		Item:       builders.NewItemBuilder().Build(),
	})
	s.True(errors.IsNotFound(err))
	s.False(s.mr.Exists("item:1"))
}

func (s *StoreTestSuite) TestDelete() {
	created, err := s.store.Create(s.ctx, s.newRecord("Sunblade"))
	s.Require().NoError(err)
	next := s.newRecord("Sunblade II")
	next.ID = created.ID
	_, err = s.store.Update(s.ctx, next)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Delete(s.ctx, created.ID))

	s.False(s.mr.Exists("item:1"))
	s.False(s.mr.Exists("item:1:versions"))
	list, err := s.store.ListByOwner(s.ctx, testOwner)
	s.Require().NoError(err)
	s.Empty(list)

	err = s.store.Delete(s.ctx, created.ID)
	s.True(errors.IsNotFound(err))
}

func (s *StoreTestSuite) TestListByOwner() {
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.store.Create(s.ctx, s.newRecord(name))
		s.Require().NoError(err)
	}
	other := s.newRecord("Other")
	other.OwnerID = "user_456"
	_, err := s.store.Create(s.ctx, other)
	s.Require().NoError(err)

	list, err := s.store.ListByOwner(s.ctx, testOwner)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("A", list[0].Item.Name)
	s.Equal("B", list[1].Item.Name)
	s.Equal("C", list[2].Item.Name)
}

func (s *StoreTestSuite) TestListByOwnerCleansStaleIndex() {
	_, err := s.store.Create(s.ctx, s.newRecord("A"))
	s.Require().NoError(err)
	_, err = s.store.Create(s.ctx, s.newRecord("B"))
	s.Require().NoError(err)
	s.mr.Del("item:1")

	list, err := s.store.ListByOwner(s.ctx, testOwner)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("B", list[0].Item.Name)

	members, err := s.mr.SMembers("item:owner:" + testOwner)
	s.Require().NoError(err)
	s.Equal([]string{"2"}, members)
}

func (s *StoreTestSuite) TestListByOwnerEmpty() {
	list, err := s.store.ListByOwner(s.ctx, testOwner)
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)

	_, err = s.store.ListByOwner(s.ctx, "")
	s.True(errors.IsInvalidArgument(err))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
