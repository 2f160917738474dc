package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 10 * time.Minute
	keyPrefix  = "kawa:inventory:sync:"
)

// ErrRunInProgress is returned when another run already holds the key.
var ErrRunInProgress = errors.New("sync already in progress")

// Release frees a held lock.
type Release func(ctx context.Context) error

// Locker grants exclusive runs per key.
type Locker interface {
	// Acquire returns ErrRunInProgress when the key is already held.
	Acquire(ctx context.Context, key string) (Release, error)
}

// Store defines the redis operations used by RedisLocker.
type Store interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// New returns a redis locker when cfg has an address, else a local one.
func New(ctx context.Context, cfg Config, ttl time.Duration) (Locker, error) {
	if !cfg.Enabled() {
		return NewLocalLocker(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisLocker(NewRedisStore(client), ttl)
}

// RedisLocker implements Locker using SETNX with a TTL and an owner token.
// A held lock is extended every third of its TTL until released, so the TTL
// only bounds how long a crashed holder blocks the key.
type RedisLocker struct {
	store   Store
	ttl     time.Duration
	refresh time.Duration
}

// NewRedisLocker constructs a redis-backed locker.
func NewRedisLocker(store Store, ttl time.Duration) (*RedisLocker, error) {
	if store == nil {
		return nil, errors.New("redis store required for lock")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{store: store, ttl: ttl, refresh: ttl / 3}, nil
}

// Acquire tries to own key for the configured TTL.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Release, error) {
	if key == "" {
		return nil, errors.New("lock key is required")
	}
	full := keyPrefix + key
	owner := uuid.NewString()

	ok, err := l.store.SetNX(ctx, full, owner, l.ttl)
	if err != nil {
		return nil, fmt.Errorf("setnx: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(full, owner, stop, done)

	var once sync.Once
	return func(ctx context.Context) error {
		once.Do(func() { close(stop) })
		<-done

		// Only the owner may delete; the key may have expired and been retaken.
		held, err := l.owns(ctx, full, owner)
		if err != nil || !held {
			return err
		}
		if err := l.store.Del(ctx, full); err != nil {
			return fmt.Errorf("delete lock: %w", err)
		}
		return nil
	}, nil
}

// keepAlive extends the key while owner still holds it.
func (l *RedisLocker) keepAlive(key, owner string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	if l.refresh <= 0 {
		return
	}

	ticker := time.NewTicker(l.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), l.refresh)
			held, err := l.owns(ctx, key, owner)
			if err == nil && held {
				err = l.store.Expire(ctx, key, l.ttl)
			}
			cancel()
			// Lost the key; a later run may already own it.
			if err == nil && !held {
				return
			}
		}
	}
}

func (l *RedisLocker) owns(ctx context.Context, key, owner string) (bool, error) {
	value, err := l.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("read lock owner: %w", err)
	}
	return value == owner, nil
}

// LocalLocker implements Locker for a single process.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker creates an empty in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

// Acquire marks key as held until the returned Release is called.
func (l *LocalLocker) Acquire(_ context.Context, key string) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, ErrRunInProgress
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
		return nil
	}, nil
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore adapts a go-redis client to Store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, value, ttl).Result()
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *redisStore) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *redisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Expire(ctx, key, ttl).Err()
}
