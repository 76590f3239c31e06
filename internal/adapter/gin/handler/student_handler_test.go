package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "student-records/internal/domain/student"
	apperrors "student-records/pkg/errors"
)

// MockUsecase is a mock implementation of student.Usecase
type MockUsecase struct {
	mock.Mock
}

func (m *MockUsecase) CreateStudent(ctx context.Context, f domain.Fields) (*domain.Student, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockUsecase) ListStudents(ctx context.Context) ([]domain.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockUsecase) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockUsecase) UpdateStudent(ctx context.Context, id string, f domain.Fields) (*domain.Student, error) {
	args := m.Called(ctx, id, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockUsecase) DeleteStudent(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func setupTest(t *testing.T) (*gin.Engine, *MockUsecase) {
	gin.SetMode(gin.TestMode)
	uc := new(MockUsecase)
	h := NewStudentHandler(uc, zaptest.NewLogger(t))

	r := gin.New()
	r.POST("/api/students", h.CreateStudent)
	r.GET("/api/students", h.ListStudents)
	r.GET("/api/students/:id", h.GetStudent)
	r.PUT("/api/students/:id", h.UpdateStudent)
	r.DELETE("/api/students/:id", h.DeleteStudent)
	return r, uc
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateStudent(t *testing.T) {
	t.Run("Success with numeric string age", func(t *testing.T) {
		r, uc := setupTest(t)

		age := 21.0
		uc.On("CreateStudent", mock.Anything, mock.MatchedBy(func(f domain.Fields) bool {
			return f.Name != nil && *f.Name == "Ana" && f.Age != nil && *f.Age == 21 && f.Email == nil
		})).Return(&domain.Student{ID: "abc", Name: "Ana", Age: &age}, nil)

		w := doRequest(r, http.MethodPost, "/api/students", `{"name":"Ana","age":"21"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp StudentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "abc", resp.ID)
		assert.Equal(t, 21.0, *resp.Age)
	})

	t.Run("Empty body creates blank record", func(t *testing.T) {
		r, uc := setupTest(t)
		uc.On("CreateStudent", mock.Anything, domain.Fields{}).Return(&domain.Student{ID: "blank"}, nil)

		w := doRequest(r, http.MethodPost, "/api/students", "")

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		r, uc := setupTest(t)

		w := doRequest(r, http.MethodPost, "/api/students", "{not json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "CreateStudent", mock.Anything, mock.Anything)
	})

	t.Run("Non numeric age", func(t *testing.T) {
		r, _ := setupTest(t)

		w := doRequest(r, http.MethodPost, "/api/students", `{"age":"twenty"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "age must be a number")
	})

	t.Run("Store error surfaces message", func(t *testing.T) {
		r, uc := setupTest(t)
		uc.On("CreateStudent", mock.Anything, mock.Anything).Return(nil, errors.New("server selection timeout"))

		w := doRequest(r, http.MethodPost, "/api/students", `{"name":"Ana"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"server selection timeout"}`, w.Body.String())
	})
}

func TestListStudents(t *testing.T) {
	t.Run("Empty list is an array", func(t *testing.T) {
		r, uc := setupTest(t)
		uc.On("ListStudents", mock.Anything).Return([]domain.Student{}, nil)

		w := doRequest(r, http.MethodGet, "/api/students", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Records", func(t *testing.T) {
		r, uc := setupTest(t)
		uc.On("ListStudents", mock.Anything).Return([]domain.Student{
			{ID: "1", Name: "Ana", Gender: "Female"},
			{ID: "2", Name: "Ben"},
		}, nil)

		w := doRequest(r, http.MethodGet, "/api/students", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []StudentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "Female", resp[0].Gender)
		assert.Nil(t, resp[1].Age)
	})

	t.Run("Store error", func(t *testing.T) {
		r, uc := setupTest(t)
		uc.On("ListStudents", mock.Anything).Return(nil, errors.New("boom"))

		w := doRequest(r, http.MethodGet, "/api/students", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
	})
}

func TestGetStudent_NotFound(t *testing.T) {
	r, uc := setupTest(t)
	uc.On("GetStudent", mock.Anything, "nope").Return(nil, apperrors.NewNotFoundError("student", "nope"))

	w := doRequest(r, http.MethodGet, "/api/students/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"student not found"}`, w.Body.String())
}

func TestUpdateStudent(t *testing.T) {
	t.Run("Partial update", func(t *testing.T) {
		r, uc := setupTest(t)

		age := 22.0
		uc.On("UpdateStudent", mock.Anything, "abc", mock.MatchedBy(func(f domain.Fields) bool {
			return f.Age != nil && *f.Age == 22 && f.Name == nil && f.Course == nil
		})).Return(&domain.Student{ID: "abc", Name: "Ana", Age: &age, Course: "CS"}, nil)

		w := doRequest(r, http.MethodPut, "/api/students/abc", `{"age":22}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp StudentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Ana", resp.Name)
		assert.Equal(t, 22.0, *resp.Age)
	})

	t.Run("Body id is ignored", func(t *testing.T) {
		r, uc := setupTest(t)
		uc.On("UpdateStudent", mock.Anything, "abc", mock.MatchedBy(func(f domain.Fields) bool {
			return f.Name != nil && *f.Name == "Ana"
		})).Return(&domain.Student{ID: "abc", Name: "Ana"}, nil)

		w := doRequest(r, http.MethodPut, "/api/students/abc", `{"id":"other","name":"Ana"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"abc"`)
	})

	t.Run("Unknown id", func(t *testing.T) {
		r, uc := setupTest(t)
		uc.On("UpdateStudent", mock.Anything, "missing", mock.Anything).Return(nil, apperrors.NewNotFoundError("student", "missing"))

		w := doRequest(r, http.MethodPut, "/api/students/missing", `{"name":"x"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteStudent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, uc := setupTest(t)
		uc.On("DeleteStudent", mock.Anything, "abc").Return(nil)

		w := doRequest(r, http.MethodDelete, "/api/students/abc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Deleted successfully"}`, w.Body.String())
	})

	t.Run("Unknown id", func(t *testing.T) {
		r, uc := setupTest(t)
		uc.On("DeleteStudent", mock.Anything, "abc").Return(apperrors.NewNotFoundError("student", "abc"))

		w := doRequest(r, http.MethodDelete, "/api/students/abc", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAge_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    *float64
		wantErr bool
	}{
		{in: `21`, want: ptr(21)},
		{in: `21.5`, want: ptr(21.5)},
		{in: `"21"`, want: ptr(21)},
		{in: `" 30 "`, want: ptr(30)},
		{in: `""`, want: nil},
		{in: `null`, want: nil},
		{in: `"abc"`, wantErr: true},
		{in: `true`, wantErr: true},
		{in: `"NaN"`, wantErr: true},
		{in: `"Infinity"`, wantErr: true},
		{in: `"-Inf"`, wantErr: true},
		{in: `"1e400"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var a Age
			err := a.UnmarshalJSON([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Value)
		})
	}
}

func ptr(f float64) *float64 { return &f }
