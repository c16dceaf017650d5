package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MaxRenameHistory caps the rename log kept per instance.
const MaxRenameHistory = 1000

// Store provides instance-scoped Redis persistence for a shared workspace.
// All keys and channels are namespaced with the instance name.
// The store is safe for concurrent use; the Workspace values it returns are not.
type Store struct {
	rdb          *redis.Client
	instanceName string
}

// NewStore creates a store for the specified instance.
// Returns an error if instanceName is empty.
func NewStore(redisOpts *redis.Options, instanceName string) (*Store, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	return &Store{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}, nil
}

// InstanceName returns the namespace the store writes to.
func (s *Store) InstanceName() string { return s.instanceName }

// Close closes the Redis connection. Implements io.Closer.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// SaveWorkspace replaces the stored workspace with ws in one transaction.
// Block order is kept in a ZSET scored by position.
func (s *Store) SaveWorkspace(ctx context.Context, ws *Workspace) error {
	orderKey := BlockOrderKey(s.instanceName)

	previous, err := s.rdb.ZRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to read block order: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range previous {
			pipe.Del(ctx, BlockKey(s.instanceName, id))
		}
		pipe.Del(ctx, orderKey)

		for i, r := range ws.Records() {
			pipe.HSet(ctx, BlockKey(s.instanceName, r.ID), RecordToHash(&r))
			pipe.ZAdd(ctx, orderKey, redis.Z{Score: float64(i), Member: r.ID})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write workspace to Redis: %w", err)
	}

	return nil
}

// LoadWorkspace reads the stored workspace.
// Returns (nil, redis.Nil) if nothing has been saved for this instance.
func (s *Store) LoadWorkspace(ctx context.Context) (*Workspace, error) {
	ids, err := s.rdb.ZRange(ctx, BlockOrderKey(s.instanceName), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read block order: %w", err)
	}
	if len(ids) == 0 {
		return nil, redis.Nil
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, BlockKey(s.instanceName, id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to read blocks from Redis: %w", err)
	}

	records := make([]Record, 0, len(ids))
	for i, cmd := range cmds {
		hash := cmd.Val()
		if len(hash) == 0 {
			return nil, fmt.Errorf("block %s is listed but missing", ids[i])
		}
		r, err := HashToRecord(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to deserialize block %s: %w", ids[i], err)
		}
		records = append(records, *r)
	}

	return FromRecords(records)
}

// GetRecord retrieves a single stored block.
// Returns (nil, redis.Nil) if the block doesn't exist.
func (s *Store) GetRecord(ctx context.Context, blockID string) (*Record, error) {
	hash, err := s.rdb.HGetAll(ctx, BlockKey(s.instanceName, blockID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read block from Redis: %w", err)
	}
	if len(hash) == 0 {
		return nil, redis.Nil
	}

	r, err := HashToRecord(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize block: %w", err)
	}
	return r, nil
}

// PublishRename appends ev to the rename history and publishes it to
// slots:{instance}:rename_events.
func (s *Store) PublishRename(ctx context.Context, ev *RenameEvent) error {
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("invalid rename event: %w", err)
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal rename event: %w", err)
	}

	logKey := RenameLogKey(s.instanceName)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, logKey, payload)
		pipe.LTrim(ctx, logKey, 0, MaxRenameHistory-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record rename event: %w", err)
	}

	if err := s.rdb.Publish(ctx, RenameEventsChannel(s.instanceName), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish rename event: %w", err)
	}

	return nil
}

// RenameHistory returns the recorded rename events, oldest first.
func (s *Store) RenameHistory(ctx context.Context) ([]*RenameEvent, error) {
	raw, err := s.rdb.LRange(ctx, RenameLogKey(s.instanceName), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read rename history: %w", err)
	}

	events := make([]*RenameEvent, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var ev RenameEvent
		if err := json.Unmarshal([]byte(raw[i]), &ev); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rename event: %w", err)
		}
		events = append(events, &ev)
	}
	return events, nil
}

// Subscription is an active subscription to rename events.
// Caller must call Close() when done.
type Subscription struct {
	events <-chan *RenameEvent
	errors <-chan error
	cancel func()
	done   <-chan struct{}
	once   sync.Once
}

// Events returns the channel of rename events. It is closed when the
// subscription ends.
func (s *Subscription) Events() <-chan *RenameEvent {
	return s.events
}

// Errors returns non-fatal decode errors; offending messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and waits for its goroutine to exit.
// Safe to call multiple times. Implements io.Closer.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	<-s.done
	return nil
}

// SubscribeRenames subscribes to rename events for this instance.
// The subscription is confirmed by Redis before this returns, so events
// published afterwards are not missed. Context cancellation also ends it.
//
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once; slow subscribers can lose events.
func (s *Store) SubscribeRenames(ctx context.Context) (*Subscription, error) {
	pubsub := s.rdb.Subscribe(ctx, RenameEventsChannel(s.instanceName))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to rename events: %w", err)
	}

	eventsChan := make(chan *RenameEvent, 10)
	errorsChan := make(chan error, 10)
	done := make(chan struct{})

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(done)
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var ev RenameEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal rename event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &ev:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
		done:   done,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
