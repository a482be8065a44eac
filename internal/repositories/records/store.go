// Package records is the redis storage shared by versioned, owner-indexed records
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-forge/internal/redis"
)

// maxTxAttempts bounds optimistic retries of one Update or Delete
const maxTxAttempts = 100

// Record is a storable entity with shared metadata
type Record interface {
	core.Entity
	Metadata() *entities.RecordMeta
}

// Config configures a Store
type Config[R Record] struct {
	Client redisclient.Client
	Clock  clock.Clock
	// New returns an empty record for decoding
	New    func() R
	Logger *zap.Logger
}

// Validate validates the config and fills defaults
func (c *Config[R]) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if c.New == nil {
		return errors.InvalidArgument("record constructor cannot be nil")
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// Store keeps the current document of each record under "{type}:{id}", the
// previous versions in the list "{type}:{id}:versions", ids in the set
// "{type}:owner:{ownerID}" and the id counter in "{type}:next_id".
type Store[R Record] struct {
	client     redisclient.Client
	clock      clock.Clock
	newRecord  func() R
	entityType string
	logger     *zap.Logger
}

// NewStore creates a Store
func NewStore[R Record](cfg *Config[R]) (*Store[R], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Store[R]{
		client:     cfg.Client,
		clock:      cfg.Clock,
		newRecord:  cfg.New,
		entityType: cfg.New().GetType(),
		logger:     cfg.Logger,
	}, nil
}

func (s *Store[R]) key(e core.Entity) string {
	return fmt.Sprintf("%s:%s", e.GetType(), e.GetID())
}

func (s *Store[R]) keyForID(id int64) string {
	return fmt.Sprintf("%s:%d", s.entityType, id)
}

func (s *Store[R]) versionsKey(id int64) string {
	return s.keyForID(id) + ":versions"
}

func (s *Store[R]) ownerKey(ownerID string) string {
	return fmt.Sprintf("%s:owner:%s", s.entityType, ownerID)
}

func (s *Store[R]) counterKey() string {
	return s.entityType + ":next_id"
}

func (s *Store[R]) decode(data string) (R, error) {
	rec := s.newRecord()
	if err := json.Unmarshal([]byte(data), rec); err != nil {
		var zero R
		return zero, errors.Wrapf(err, "failed to unmarshal %s", s.entityType)
	}
	return rec, nil
}

// Create assigns the next id, sets version 1 and stores the record
func (s *Store[R]) Create(ctx context.Context, rec R) (R, error) {
	var zero R
	meta := rec.Metadata()
	if meta.OwnerID == "" {
		return zero, errors.InvalidArgument("owner ID cannot be empty")
	}

	id, err := s.client.Incr(ctx, s.counterKey()).Result()
	if err != nil {
		return zero, errors.Wrapf(err, "failed to allocate %s id", s.entityType)
	}

	now := s.clock.Now()
	meta.ID = id
	meta.Version = 1
	meta.CreatedAt = now
	meta.UpdatedAt = now

	data, err := json.Marshal(rec)
	if err != nil {
		return zero, errors.Wrapf(err, "failed to marshal %s", s.entityType)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(rec), data, 0)
	pipe.SAdd(ctx, s.ownerKey(meta.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return zero, errors.Wrapf(err, "failed to create %s", s.entityType)
	}

	s.logger.Debug("record created",
		zap.String("type", s.entityType),
		zap.Int64("id", id),
		zap.String("owner_id", meta.OwnerID))

	return rec, nil
}

// Get loads the current version of a record
func (s *Store[R]) Get(ctx context.Context, id int64) (R, error) {
	var zero R
	if id <= 0 {
		return zero, errors.InvalidArgument("id must be positive")
	}

	data, err := s.client.Get(ctx, s.keyForID(id)).Result()
	if err != nil {
		if err == redisclient.Nil {
			return zero, errors.NotFoundf("%s %d not found", s.entityType, id)
		}
		return zero, errors.Wrapf(err, "failed to get %s", s.entityType)
	}
	return s.decode(data)
}

// GetVersion loads a specific version; the current version is read from
// the record itself and older ones from the version list.
func (s *Store[R]) GetVersion(ctx context.Context, id int64, version int) (R, error) {
	var zero R
	current, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	latest := current.Metadata().Version
	if version == latest {
		return current, nil
	}
	if version < 1 || version > latest {
		return zero, errors.NotFoundf("%s %d has no version %d", s.entityType, id, version)
	}

	data, err := s.client.LIndex(ctx, s.versionsKey(id), int64(version-1)).Result()
	if err != nil {
		if err == redisclient.Nil {
			return zero, errors.NotFoundf("%s %d has no version %d", s.entityType, id, version)
		}
		return zero, errors.Wrapf(err, "failed to get %s version", s.entityType)
	}
	return s.decode(data)
}

// Update stores rec as the next version of an existing record. Id, owner and
// creation time are kept from the stored record. The read and the write run
// under WATCH so concurrent updates each get their own version.
func (s *Store[R]) Update(ctx context.Context, rec R) (R, error) {
	var zero R
	meta := rec.Metadata()
	if meta.ID <= 0 {
		return zero, errors.InvalidArgument("id must be positive")
	}
	key := s.keyForID(meta.ID)

	update := func(tx *redis.Tx) error {
		previous, err := s.read(ctx, tx, meta.ID)
		if err != nil {
			return err
		}
		existing, err := s.decode(previous)
		if err != nil {
			return err
		}
		prev := existing.Metadata()

		meta.OwnerID = prev.OwnerID
		meta.CreatedAt = prev.CreatedAt
		meta.Version = prev.Version + 1
		meta.UpdatedAt = s.clock.Now()

		data, err := json.Marshal(rec)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal %s", s.entityType)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, s.versionsKey(meta.ID), previous)
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return s.execErr(err, "update")
	}

	if err := s.watch(ctx, update, key); err != nil {
		return zero, err
	}
	return rec, nil
}

// Delete removes a record, its versions and its owner index entry
func (s *Store[R]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.InvalidArgument("id must be positive")
	}
	key := s.keyForID(id)

	del := func(tx *redis.Tx) error {
		data, err := s.read(ctx, tx, id)
		if err != nil {
			return err
		}
		existing, err := s.decode(data)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key, s.versionsKey(id))
			pipe.SRem(ctx, s.ownerKey(existing.Metadata().OwnerID), id)
			return nil
		})
		return s.execErr(err, "delete")
	}

	return s.watch(ctx, del, key)
}

// read loads the raw current document inside a watched transaction
func (s *Store[R]) read(ctx context.Context, tx *redis.Tx, id int64) (string, error) {
	data, err := tx.Get(ctx, s.keyForID(id)).Result()
	if err != nil {
		if err == redisclient.Nil {
			return "", errors.NotFoundf("%s %d not found", s.entityType, id)
		}
		return "", errors.Wrapf(err, "failed to get %s", s.entityType)
	}
	return data, nil
}

// execErr passes a lost WATCH through untouched so watch can retry it
func (s *Store[R]) execErr(err error, op string) error {
	if err == nil || err == redis.TxFailedErr {
		return err
	}
	return errors.Wrapf(err, "failed to %s %s", op, s.entityType)
}

// watch runs fn in an optimistic transaction on key, retrying while other
// writers win the race
func (s *Store[R]) watch(ctx context.Context, fn func(*redis.Tx) error, key string) error {
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.client.Watch(ctx, fn, key)
		if err != redis.TxFailedErr {
			return err
		}
		s.logger.Debug("record changed during transaction, retrying",
			zap.String("key", key), zap.Int("attempt", attempt+1))
	}
	return errors.Unavailablef("%s is being modified concurrently, try again", key)
}

// ListByOwner returns an owner's records ordered by id. Index entries whose
// record is gone are removed.
func (s *Store[R]) ListByOwner(ctx context.Context, ownerID string) ([]R, error) {
	if ownerID == "" {
		return nil, errors.InvalidArgument("owner ID cannot be empty")
	}

	indexKey := s.ownerKey(ownerID)
	members, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read index %s", indexKey)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			s.logger.Warn("dropping malformed index entry", zap.String("index_key", indexKey), zap.String("member", m))
			s.client.SRem(ctx, indexKey, m)
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]R, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.keyForID(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s records", s.entityType)
	}

	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			s.logger.Warn("record missing, cleaning up index",
				zap.String("index_key", indexKey), zap.Int64("id", ids[i]))
			s.client.SRem(ctx, indexKey, ids[i])
			continue
		}
		rec, err := s.decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
