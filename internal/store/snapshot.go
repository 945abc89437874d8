package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/go-redis/redis/v8"

	"hooks/internal/domain"
)

// ErrNoSnapshot reports that no snapshot has been written yet. The
// notification store treats it as "first activation" and seeds the feed.
var ErrNoSnapshot = errors.New("no snapshot present")

// Snapshot is a single named slot holding the serialized notification feed.
// Load is called once at store activation; Save overwrites the slot after
// every mutation (full-state overwrite, no append).
type Snapshot interface {
	Load(ctx context.Context) ([]domain.Notification, error)
	Save(ctx context.Context, feed []domain.Notification) error
}

// FileSnapshot persists the feed as a JSON file, the broker-free default.
type FileSnapshot struct {
	Path string
}

func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{Path: path}
}

func (s *FileSnapshot) Load(_ context.Context) ([]domain.Notification, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	var feed []domain.Notification
	if err := json.Unmarshal(b, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (s *FileSnapshot) Save(_ context.Context, feed []domain.Notification) error {
	b, err := json.Marshal(feed)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0644)
}

// RedisSnapshot stores the feed as a JSON blob under one key.
type RedisSnapshot struct {
	client *redis.Client
	key    string
}

func NewRedisSnapshot(client *redis.Client, key string) *RedisSnapshot {
	return &RedisSnapshot{client: client, key: key}
}

func (s *RedisSnapshot) Load(ctx context.Context) ([]domain.Notification, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	var feed []domain.Notification
	if err := json.Unmarshal(b, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (s *RedisSnapshot) Save(ctx context.Context, feed []domain.Notification) error {
	b, err := json.Marshal(feed)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, b, 0).Err()
}

// MemorySnapshot keeps the slot in process memory. Test double; also the
// sink of last resort when neither a file path nor redis is configured.
type MemorySnapshot struct {
	feed    []domain.Notification
	written bool

	// FailSave forces Save errors, for exercising the soft-failure path.
	FailSave error
}

func (s *MemorySnapshot) Load(_ context.Context) ([]domain.Notification, error) {
	if !s.written {
		return nil, ErrNoSnapshot
	}
	out := make([]domain.Notification, len(s.feed))
	copy(out, s.feed)
	return out, nil
}

func (s *MemorySnapshot) Save(_ context.Context, feed []domain.Notification) error {
	if s.FailSave != nil {
		return s.FailSave
	}
	s.feed = make([]domain.Notification, len(feed))
	copy(s.feed, feed)
	s.written = true
	return nil
}
