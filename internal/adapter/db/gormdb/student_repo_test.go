package gormdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"student-records/internal/domain/student"
	apperrors "student-records/pkg/errors"
)

func setupTestRepo(t *testing.T) *StudentRepo {
	db, err := OpenSQLite(":memory:", &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return NewStudentRepo(db, zaptest.NewLogger(t))
}

func strPtr(s string) *string { return &s }

func numPtr(f float64) *float64 { return &f }

func TestStudentRepo_CreateAndList(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, student.Fields{Name: strPtr("Ana"), Age: numPtr(21), Course: strPtr("CS")})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "CS", got.Course)
	require.NotNil(t, got.Age)
	assert.Equal(t, 21.0, *got.Age)
	assert.Empty(t, got.Email)
	assert.Empty(t, got.Gender)
}

func TestStudentRepo_List_Empty(t *testing.T) {
	repo := setupTestRepo(t)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestStudentRepo_Create_UniqueIDs(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s, err := repo.Create(ctx, student.Fields{})
		require.NoError(t, err)
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}

func TestStudentRepo_UpdateByID_Merges(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, student.Fields{
		Name:   strPtr("Ana"),
		Email:  strPtr("ana@example.com"),
		Age:    numPtr(21),
		Course: strPtr("CS"),
		Gender: strPtr("Female"),
	})
	require.NoError(t, err)

	updated, err := repo.UpdateByID(ctx, created.ID, student.Fields{Age: numPtr(22)})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 22.0, *updated.Age)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "ana@example.com", updated.Email)
	assert.Equal(t, "CS", updated.Course)
	assert.Equal(t, "Female", updated.Gender)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestStudentRepo_UpdateByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.UpdateByID(ctx, "missing", student.Fields{Name: strPtr("x")})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStudentRepo_DeleteByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	keep, err := repo.Create(ctx, student.Fields{Name: strPtr("Keep")})
	require.NoError(t, err)
	drop, err := repo.Create(ctx, student.Fields{Name: strPtr("Drop")})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByID(ctx, drop.ID))

	err = repo.DeleteByID(ctx, drop.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
}

func TestStudentRepo_GetByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStudentRepo_ListIsIdempotent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, student.Fields{Name: strPtr(name)})
		require.NoError(t, err)
	}

	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
