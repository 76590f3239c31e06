package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"student-records/internal/domain/student"
)

const keyPrefix = "student:"

// StudentCache stores single student records by id.
type StudentCache interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, id string) (*student.Student, error)
	Set(ctx context.Context, s *student.Student) error
	Delete(ctx context.Context, id string) error
}

// RedisStudentCache implements StudentCache on Redis with a fixed TTL.
type RedisStudentCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisStudentCache creates a new Redis-backed student cache.
func NewRedisStudentCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisStudentCache {
	return &RedisStudentCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cachedStudent is the JSON form kept in Redis.
type cachedStudent struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Age    *float64 `json:"age,omitempty"`
	Course string   `json:"course"`
	Gender string   `json:"gender"`
}

func cacheKey(id string) string {
	return keyPrefix + id
}

// Get retrieves a student from Redis.
func (c *RedisStudentCache) Get(ctx context.Context, id string) (*student.Student, error) {
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.String("student_id", id))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("student_id", id), zap.Error(err))
		return nil, err
	}

	var cs cachedStudent
	if err := json.Unmarshal(data, &cs); err != nil {
		c.log.Error("failed to unmarshal cached student", zap.String("student_id", id), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("student_id", id))
	return &student.Student{
		ID:     cs.ID,
		Name:   cs.Name,
		Email:  cs.Email,
		Age:    cs.Age,
		Course: cs.Course,
		Gender: cs.Gender,
	}, nil
}

// Set stores a student in Redis with the configured TTL.
func (c *RedisStudentCache) Set(ctx context.Context, s *student.Student) error {
	if s == nil {
		return fmt.Errorf("cannot cache nil student")
	}

	data, err := json.Marshal(cachedStudent{
		ID:     s.ID,
		Name:   s.Name,
		Email:  s.Email,
		Age:    s.Age,
		Course: s.Course,
		Gender: s.Gender,
	})
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, cacheKey(s.ID), data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("student_id", s.ID), zap.Error(err))
		return err
	}

	c.log.Debug("cached student", zap.String("student_id", s.ID), zap.Duration("ttl", c.ttl))
	return nil
}

// Delete removes a student from Redis. Deleting a missing key is not an error.
func (c *RedisStudentCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.String("student_id", id), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.String("student_id", id))
	return nil
}
