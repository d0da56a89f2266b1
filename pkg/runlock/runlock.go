package runlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a crashed run can hold its lock. Live runs renew it.
const DefaultTTL = 10 * time.Minute

// ErrLocked is returned when another run holds the lock
var ErrLocked = errors.New("a scheduling run is already in progress for this organization and week")

// releaseScript deletes the key only if it still holds our token
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// extendScript resets the expiry only if the key still holds our token
const extendScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`

// Locker serialises scheduling runs for the same key
type Locker interface {
	// Acquire takes the lock or returns ErrLocked. The lock is kept alive until the
	// returned function releases it.
	Acquire(ctx context.Context, key string) (func(context.Context) error, error)
}

// Key returns the lock key for an organization's week
func Key(organizationID string, weekStart time.Time) string {
	return fmt.Sprintf("autoschedule:%s:%s", organizationID, weekStart.Format("2006-01-02"))
}

// client is the subset of redis.Client the lock uses
type client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker is a single-instance Redis lock (SET NX PX with a random token)
type RedisLocker struct {
	client client
	ttl    time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return newRedisLocker(rdb, ttl)
}

func newRedisLocker(c client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{client: c, ttl: ttl}
}

// NewClient creates a Redis client and checks the connection
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	return rdb, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	renewCtx, stopRenewal := context.WithCancel(ctx)
	renewed := make(chan struct{})
	go func() {
		defer close(renewed)
		l.renew(renewCtx, key, token)
	}()

	release := func(ctx context.Context) error {
		stopRenewal()
		<-renewed

		if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}

	return release, nil
}

// renew extends the lock every third of its TTL until ctx is done or the key no longer
// holds token. A failed extension is retried on the next tick.
func (l *RedisLocker) renew(ctx context.Context, key, token string) {
	interval := l.ttl / 3
	if interval <= 0 {
		interval = l.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			held, err := l.client.Eval(ctx, extendScript, []string{key}, token, l.ttl.Milliseconds()).Int64()
			if err == nil && held == 0 {
				return
			}
		}
	}
}
