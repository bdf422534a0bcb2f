package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMappingNotFound is returned by ShuffleStore.Load when nothing is stored.
var ErrMappingNotFound = errors.New("shuffle mapping not found")

// ShuffleMapping is what a student was shown for one test code: the question
// order and, per question, which stored option label sits behind each
// displayed label.
type ShuffleMapping struct {
	QuestionIDs []uint                     `json:"question_ids"`
	Options     map[uint]map[string]string `json:"options"`
	IssuedAt    time.Time                  `json:"issued_at"`
}

// StoredLabel resolves a displayed label for question id. ok is false when the
// question was not delivered or the label was not offered.
func (m *ShuffleMapping) StoredLabel(questionID uint, displayed string) (string, bool) {
	opts, found := m.Options[questionID]
	if !found {
		return "", false
	}
	stored, found := opts[displayed]
	return stored, found
}

// ShuffleStore keeps one mapping per (test code, student).
type ShuffleStore interface {
	Save(ctx context.Context, codeID, studentID uint, m *ShuffleMapping, ttl time.Duration) error
	Load(ctx context.Context, codeID, studentID uint) (*ShuffleMapping, error)
	Delete(ctx context.Context, codeID, studentID uint) error
}

type RedisShuffleStore struct {
	Redis *redis.Client
}

func NewRedisShuffleStore(rdb *redis.Client) *RedisShuffleStore {
	return &RedisShuffleStore{Redis: rdb}
}

func shuffleKey(codeID, studentID uint) string {
	return fmt.Sprintf("cbt:shuffle:%d:%d", codeID, studentID)
}

func (s *RedisShuffleStore) Save(ctx context.Context, codeID, studentID uint, m *ShuffleMapping, ttl time.Duration) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, shuffleKey(codeID, studentID), data, ttl).Err()
}

func (s *RedisShuffleStore) Load(ctx context.Context, codeID, studentID uint) (*ShuffleMapping, error) {
	val, err := s.Redis.Get(ctx, shuffleKey(codeID, studentID)).Bytes()
	if err == redis.Nil {
		return nil, ErrMappingNotFound
	}
	if err != nil {
		return nil, err
	}
	var m ShuffleMapping
	if err := json.Unmarshal(val, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *RedisShuffleStore) Delete(ctx context.Context, codeID, studentID uint) error {
	return s.Redis.Del(ctx, shuffleKey(codeID, studentID)).Err()
}
