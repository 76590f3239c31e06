package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	domain "student-records/internal/domain/student"
)

// Age accepts a JSON number or a numeric string ("21"), the way HTML form
// inputs submit it. An empty string means the field is absent.
type Age struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		a.Value = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			a.Value = nil
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !finite(v) {
			return fmt.Errorf("age must be a number, got %q", s)
		}
		a.Value = &v
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("age must be a number: %w", err)
	}
	a.Value = &v
	return nil
}

// finite rejects the NaN and Inf spellings ParseFloat accepts; they cannot
// be encoded back to JSON.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// StudentRequest is the body of create and update requests. Every field is
// optional; absent fields are left untouched on update. Unknown fields,
// including any id, are ignored.
type StudentRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Age    *Age    `json:"age"`
	Course *string `json:"course"`
	Gender *string `json:"gender"`
}

// ToFields converts the request into domain fields.
func (r StudentRequest) ToFields() domain.Fields {
	f := domain.Fields{
		Name:   r.Name,
		Email:  r.Email,
		Course: r.Course,
		Gender: r.Gender,
	}
	if r.Age != nil {
		f.Age = r.Age.Value
	}
	return f
}

// StudentResponse represents a stored student record.
type StudentResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Age    *float64 `json:"age,omitempty"`
	Course string   `json:"course"`
	Gender string   `json:"gender"`
}

// NewStudentResponse converts a domain record.
func NewStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		ID:     s.ID,
		Name:   s.Name,
		Email:  s.Email,
		Age:    s.Age,
		Course: s.Course,
		Gender: s.Gender,
	}
}

// MessageResponse is returned by delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
