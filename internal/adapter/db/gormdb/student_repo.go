package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-records/internal/domain/student"
	apperrors "student-records/pkg/errors"
)

// StudentRepo implements student.Store on top of GORM. It serves both the
// PostgreSQL deployment and the SQLite ephemeral store.
type StudentRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewStudentRepo creates a new instance of StudentRepo.
func NewStudentRepo(db *gorm.DB, log *zap.Logger) *StudentRepo {
	return &StudentRepo{db: db, log: log}
}

// StudentSchema represents the database schema for the students table.
type StudentSchema struct {
	ID        string   `gorm:"primaryKey;size:36"` // UUID assigned on create
	Seq       int64    `gorm:"index"` // creation order
	Name      string   `gorm:"not null;default:''"`
	Email     string   `gorm:"not null;default:''"`
	Age       *float64 // nullable
	Course    string   `gorm:"not null;default:''"`
	Gender    string   `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the StudentSchema model.
func (StudentSchema) TableName() string {
	return "students"
}

// Migrate creates or updates the students table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&StudentSchema{}); err != nil {
		return fmt.Errorf("failed to migrate students table: %w", err)
	}
	return nil
}

func toDomain(m StudentSchema) student.Student {
	return student.Student{
		ID:     m.ID,
		Name:   m.Name,
		Email:  m.Email,
		Age:    m.Age,
		Course: m.Course,
		Gender: m.Gender,
	}
}

func (m *StudentSchema) apply(s student.Student) {
	m.Name = s.Name
	m.Email = s.Email
	m.Age = s.Age
	m.Course = s.Course
	m.Gender = s.Gender
}

// Create inserts a new student with a fresh UUID.
func (r *StudentRepo) Create(ctx context.Context, f student.Fields) (*student.Student, error) {
	model := StudentSchema{
		ID:  uuid.NewString(),
		Seq: time.Now().UnixNano(),
	}
	model.apply(student.New(f))

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create student in db", zap.Error(err))
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	r.log.Info("student created in db", zap.String("id", model.ID))
	out := toDomain(model)
	return &out, nil
}

// List returns every student in insertion order.
func (r *StudentRepo) List(ctx context.Context) ([]student.Student, error) {
	var models []StudentSchema
	if err := r.db.WithContext(ctx).Order("seq ASC").Order("id ASC").Find(&models).Error; err != nil {
		r.log.Error("failed to list students from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	students := make([]student.Student, len(models))
	for i, m := range models {
		students[i] = toDomain(m)
	}
	return students, nil
}

// GetByID retrieves a student by id.
func (r *StudentRepo) GetByID(ctx context.Context, id string) (*student.Student, error) {
	var model StudentSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("student not found", zap.String("id", id))
			return nil, apperrors.NewNotFoundError("student", id)
		}
		r.log.Error("failed to get student from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	out := toDomain(model)
	return &out, nil
}

// UpdateByID merges f into the stored student inside a transaction and
// returns the result.
func (r *StudentRepo) UpdateByID(ctx context.Context, id string, f student.Fields) (*student.Student, error) {
	var model StudentSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			return err
		}

		current := toDomain(model)
		current.Merge(f)
		model.apply(current)

		return tx.Save(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("update of unknown student", zap.String("id", id))
			return nil, apperrors.NewNotFoundError("student", id)
		}
		r.log.Error("failed to update student in db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	r.log.Info("student updated in db", zap.String("id", id))
	out := toDomain(model)
	return &out, nil
}

// DeleteByID removes a student by id.
func (r *StudentRepo) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&StudentSchema{})
	if res.Error != nil {
		r.log.Error("failed to delete student in db", zap.Error(res.Error), zap.String("id", id))
		return fmt.Errorf("failed to delete student: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.log.Warn("delete of unknown student", zap.String("id", id))
		return apperrors.NewNotFoundError("student", id)
	}

	r.log.Info("student deleted in db", zap.String("id", id))
	return nil
}
