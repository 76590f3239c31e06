package cached

import (
	"context"
	"hash/fnv"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"student-records/internal/adapter/cache"
	"student-records/internal/domain/student"
)

// generationSlots bounds the invalidation counters. Ids sharing a slot only
// cost an occasional skipped cache fill.
const generationSlots = 256

// StudentRepository wraps a student.Store with a cache-aside layer for
// single-record reads. Writes go to the store first and then invalidate
// the cached entry; List always reads the store.
//
// A fill whose store read overlapped a write in this process is discarded.
// Writes made by other processes are only bounded by the cache TTL.
type StudentRepository struct {
	store       student.Store
	cache       cache.StudentCache
	log         *zap.Logger
	group       singleflight.Group
	generations [generationSlots]atomic.Uint64
}

// NewStudentRepository creates a cached view over store.
func NewStudentRepository(store student.Store, c cache.StudentCache, log *zap.Logger) *StudentRepository {
	return &StudentRepository{
		store: store,
		cache: c,
		log:   log,
	}
}

// Create delegates to the store.
func (r *StudentRepository) Create(ctx context.Context, f student.Fields) (*student.Student, error) {
	return r.store.Create(ctx, f)
}

// List delegates to the store.
func (r *StudentRepository) List(ctx context.Context) ([]student.Student, error) {
	return r.store.List(ctx)
}

// GetByID reads through the cache. Concurrent misses for one id share a
// single store lookup.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*student.Student, error) {
	if s, err := r.cache.Get(ctx, id); err != nil {
		r.log.Warn("cache get error, falling back to store", zap.String("id", id), zap.Error(err))
	} else if s != nil {
		return s, nil
	}

	result, err, _ := r.group.Do(id, func() (any, error) {
		gen := r.generation(id)
		before := gen.Load()

		s, err := r.store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if gen.Load() != before {
			return s, nil
		}
		if err := r.cache.Set(ctx, s); err != nil {
			r.log.Warn("failed to cache student", zap.String("id", id), zap.Error(err))
		}
		// a write that landed during Set may have deleted the entry first
		if gen.Load() != before {
			r.evict(ctx, id)
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	return clone(result.(*student.Student)), nil
}

func (r *StudentRepository) generation(id string) *atomic.Uint64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &r.generations[h.Sum32()%generationSlots]
}

// clone gives each singleflight caller its own record.
func clone(s *student.Student) *student.Student {
	out := *s
	if s.Age != nil {
		age := *s.Age
		out.Age = &age
	}
	return &out
}

// UpdateByID updates the store and invalidates the cached entry.
func (r *StudentRepository) UpdateByID(ctx context.Context, id string, f student.Fields) (*student.Student, error) {
	s, err := r.store.UpdateByID(ctx, id, f)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, id)
	return s, nil
}

// DeleteByID deletes from the store and invalidates the cached entry.
func (r *StudentRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *StudentRepository) invalidate(ctx context.Context, id string) {
	r.generation(id).Add(1)
	r.evict(ctx, id)
}

func (r *StudentRepository) evict(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cached student", zap.String("id", id), zap.Error(err))
	}
}
