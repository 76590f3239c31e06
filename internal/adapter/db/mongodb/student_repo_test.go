package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"student-records/internal/domain/student"
	apperrors "student-records/pkg/errors"
)

func strPtr(s string) *string { return &s }

func numPtr(f float64) *float64 { return &f }

// setupTestRepo connects to the server named by MONGO_TEST_URI and returns
// a repository over a throwaway database.
func setupTestRepo(t *testing.T) *StudentRepo {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	log := zaptest.NewLogger(t)
	client, err := Connect(ctx, uri, 5*time.Second, log)
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("students_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	return NewStudentRepo(db.Collection("students"), log)
}

func TestSetDocument(t *testing.T) {
	set := setDocument(student.Fields{Name: strPtr(""), Age: numPtr(22)})
	assert.Equal(t, bson.M{"name": "", "age": 22.0}, set)

	assert.Empty(t, setDocument(student.Fields{}))
}

func TestObjectID_InvalidIsNotFound(t *testing.T) {
	_, err := objectID("not-an-object-id")
	assert.True(t, apperrors.IsNotFound(err))

	oid := primitive.NewObjectID()
	got, err := objectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}

func TestStudentDocument_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	s := studentDocument{ID: oid, Name: "Ana", Age: numPtr(21)}.toDomain()

	assert.Equal(t, oid.Hex(), s.ID)
	assert.Equal(t, "Ana", s.Name)
	assert.Equal(t, 21.0, *s.Age)
}

func TestStudentRepo_Lifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	created, err := repo.Create(ctx, student.Fields{Name: strPtr("Ana"), Age: numPtr(21), Course: strPtr("CS")})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := repo.UpdateByID(ctx, created.ID, student.Fields{Age: numPtr(22)})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "CS", updated.Course)
	assert.Equal(t, 22.0, *updated.Age)

	unchanged, err := repo.UpdateByID(ctx, created.ID, student.Fields{})
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *updated, list[0])

	require.NoError(t, repo.DeleteByID(ctx, created.ID))
	assert.True(t, apperrors.IsNotFound(repo.DeleteByID(ctx, created.ID)))

	_, err = repo.UpdateByID(ctx, created.ID, student.Fields{Name: strPtr("x")})
	assert.True(t, apperrors.IsNotFound(err))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
