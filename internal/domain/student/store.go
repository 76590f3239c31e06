package student

import "context"

// Store is durable keyed storage of student records.
//
// UpdateByID, DeleteByID and GetByID return a *errors.NotFoundError from
// pkg/errors when no record has the given id, including ids the backend
// cannot parse.
type Store interface {
	Create(ctx context.Context, f Fields) (*Student, error)
	List(ctx context.Context) ([]Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	UpdateByID(ctx context.Context, id string, f Fields) (*Student, error)
	DeleteByID(ctx context.Context, id string) error
}
