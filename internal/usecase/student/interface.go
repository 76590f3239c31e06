package student

import (
	"context"

	domain "student-records/internal/domain/student"
)

// Usecase defines the student record operations exposed to transports.
type Usecase interface {
	CreateStudent(ctx context.Context, f domain.Fields) (*domain.Student, error)
	ListStudents(ctx context.Context) ([]domain.Student, error)
	GetStudent(ctx context.Context, id string) (*domain.Student, error)
	UpdateStudent(ctx context.Context, id string, f domain.Fields) (*domain.Student, error)
	DeleteStudent(ctx context.Context, id string) error
}
