package student

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "student-records/internal/domain/student"
	apperrors "student-records/pkg/errors"
	"student-records/pkg/logger"
)

// Service implements Usecase over a domain.Store. It holds no state of its
// own; store errors are returned unchanged so not-found stays distinguishable.
type Service struct {
	store domain.Store
	log   *zap.Logger
}

var _ Usecase = (*Service)(nil)

// New creates a Service backed by store.
func New(store domain.Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("id", "is required")
	}
	return nil
}

// fieldNames lists the fields present in f, for logging.
func fieldNames(f domain.Fields) []string {
	names := make([]string, 0, 5)
	if f.Name != nil {
		names = append(names, "name")
	}
	if f.Email != nil {
		names = append(names, "email")
	}
	if f.Age != nil {
		names = append(names, "age")
	}
	if f.Course != nil {
		names = append(names, "course")
	}
	if f.Gender != nil {
		names = append(names, "gender")
	}
	return names
}

// CreateStudent stores a new record built from f.
func (s *Service) CreateStudent(ctx context.Context, f domain.Fields) (*domain.Student, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("creating student", zap.Strings("fields", fieldNames(f)))

	created, err := s.store.Create(ctx, f)
	if err != nil {
		log.Error("failed to create student", zap.Error(err))
		return nil, err
	}
	return created, nil
}

// ListStudents returns every stored record; never nil on success.
func (s *Service) ListStudents(ctx context.Context) ([]domain.Student, error) {
	log := logger.WithContext(ctx, s.log)

	students, err := s.store.List(ctx)
	if err != nil {
		log.Error("failed to list students", zap.Error(err))
		return nil, err
	}
	if students == nil {
		students = []domain.Student{}
	}

	log.Debug("listed students", zap.Int("count", len(students)))
	return students, nil
}

// GetStudent returns one record by id.
func (s *Service) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	found, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, "failed to get student", id, err)
		return nil, err
	}
	return found, nil
}

// UpdateStudent merges f into the record with the given id.
func (s *Service) UpdateStudent(ctx context.Context, id string, f domain.Fields) (*domain.Student, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	logger.WithContext(ctx, s.log).Info("updating student", zap.String("id", id), zap.Strings("fields", fieldNames(f)))

	updated, err := s.store.UpdateByID(ctx, id, f)
	if err != nil {
		s.logFailure(ctx, "failed to update student", id, err)
		return nil, err
	}
	return updated, nil
}

// DeleteStudent removes the record with the given id.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	logger.WithContext(ctx, s.log).Info("deleting student", zap.String("id", id))

	if err := s.store.DeleteByID(ctx, id); err != nil {
		s.logFailure(ctx, "failed to delete student", id, err)
		return err
	}
	return nil
}

// logFailure logs not-found at warn level and everything else as an error.
func (s *Service) logFailure(ctx context.Context, msg, id string, err error) {
	log := logger.WithContext(ctx, s.log)
	if apperrors.IsNotFound(err) {
		log.Warn(msg, zap.String("id", id), zap.Error(err))
		return
	}
	log.Error(msg, zap.String("id", id), zap.Error(err))
}
