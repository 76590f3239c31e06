package grpc

import (
	domain "student-records/internal/domain/student"
)

// Student is the wire form of a record.
type Student struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Age    *float64 `json:"age,omitempty"`
	Course string   `json:"course"`
	Gender string   `json:"gender"`
}

// StudentFields carries a partial record. Absent fields are left unchanged.
type StudentFields struct {
	Name   *string  `json:"name,omitempty"`
	Email  *string  `json:"email,omitempty"`
	Age    *float64 `json:"age,omitempty"`
	Course *string  `json:"course,omitempty"`
	Gender *string  `json:"gender,omitempty"`
}

type CreateStudentRequest struct {
	Fields StudentFields `json:"fields"`
}

type ListStudentsRequest struct{}

type ListStudentsResponse struct {
	Students []Student `json:"students"`
}

type GetStudentRequest struct {
	ID string `json:"id"`
}

type UpdateStudentRequest struct {
	ID     string        `json:"id"`
	Fields StudentFields `json:"fields"`
}

type DeleteStudentRequest struct {
	ID string `json:"id"`
}

type DeleteStudentResponse struct {
	Message string `json:"message"`
}

func (f StudentFields) toDomain() domain.Fields {
	return domain.Fields{
		Name:   f.Name,
		Email:  f.Email,
		Age:    f.Age,
		Course: f.Course,
		Gender: f.Gender,
	}
}

func toMessage(s *domain.Student) *Student {
	return &Student{
		ID:     s.ID,
		Name:   s.Name,
		Email:  s.Email,
		Age:    s.Age,
		Course: s.Course,
		Gender: s.Gender,
	}
}
