// Package lock provides a coarse per-key mutex used to serialize clock
// events for the same employee and day across instances. The in-memory
// backend covers single-instance deployments and tests; the Redis backend
// covers multi-instance ones.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrHeld is returned when the key is already locked elsewhere.
var ErrHeld = errors.New("lock already held")

// Locker acquires a short-lived exclusive lock on a key. Release must be
// called with the token returned by Acquire.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Release(ctx context.Context, key string, token string) error
}

// InMemory is a process-local Locker.
type InMemory struct {
	mu   sync.Mutex
	held map[string]memEntry
}

type memEntry struct {
	token   string
	expires time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{held: make(map[string]memEntry)}
}

func (l *InMemory) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if e, ok := l.held[key]; ok && now.Before(e.expires) {
		return "", ErrHeld
	}

	token := now.Format(time.RFC3339Nano)
	l.held[key] = memEntry{token: token, expires: now.Add(ttl)}
	return token, nil
}

func (l *InMemory) Release(ctx context.Context, key string, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.held[key]; ok && e.token == token {
		delete(l.held, key)
	}
	return nil
}

// Redis is a Locker backed by SET NX PX.
type Redis struct {
	client *redis.Client
}

// NewRedis connects with short timeouts; lock operations must never stall a
// clock request.
func NewRedis(addr, password string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{client: client}
}

// Healthy verifies redis connectivity.
func (l *Redis) Healthy(ctx context.Context) bool {
	if l == nil || l.client == nil {
		return false
	}
	return l.client.Ping(ctx).Err() == nil
}

func (l *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := time.Now().Format(time.RFC3339Nano)
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrHeld
	}
	return token, nil
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *Redis) Release(ctx context.Context, key string, token string) error {
	return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
}
