// Package roster holds the state of the single student-records view: the
// fetched list, the form being edited and the id of the record under edit.
// Every mutation is followed by a fresh fetch of the whole list.
package roster

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"student-records/internal/client"
	"student-records/internal/domain/student"
)

// Form field names accepted by Change.
const (
	FieldName   = "name"
	FieldEmail  = "email"
	FieldAge    = "age"
	FieldCourse = "course"
	FieldGender = "gender"
)

const (
	emptyMessage = "No students submitted yet."
	addLabel     = "Add Student"
	updateLabel  = "Update Student"
)

var genderRule = fmt.Sprintf("omitempty,oneof=%s %s %s", student.GenderMale, student.GenderFemale, student.GenderOther)

// API is the subset of the REST client the roster drives.
type API interface {
	ListStudents(ctx context.Context) ([]client.Student, error)
	CreateStudent(ctx context.Context, in client.Input) (*client.Student, error)
	UpdateStudent(ctx context.Context, id string, in client.Input) (*client.Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

// Form holds the values as a user typed them.
type Form struct {
	Name   string
	Email  string
	Age    string
	Course string
	Gender string
}

func (f Form) input() client.Input {
	return client.Input{
		Name:   f.Name,
		Email:  f.Email,
		Age:    f.Age,
		Course: f.Course,
		Gender: f.Gender,
	}
}

// Roster is the client-side view state. It is not safe for concurrent use.
type Roster struct {
	api      API
	log      *zap.Logger
	validate *validator.Validate

	Students  []client.Student
	Form      Form
	EditingID string // empty while creating a new record
}

// New returns an empty roster backed by api.
func New(api API, log *zap.Logger) *Roster {
	return &Roster{
		api:      api,
		log:      log,
		validate: validator.New(),
		Students: []client.Student{},
	}
}

// Mount loads the record list once.
func (r *Roster) Mount(ctx context.Context) error {
	return r.refresh(ctx)
}

func (r *Roster) refresh(ctx context.Context) error {
	students, err := r.api.ListStudents(ctx)
	if err != nil {
		r.log.Error("failed to fetch students", zap.Error(err))
		return err
	}
	r.Students = students
	return nil
}

// Change sets one form field. Unknown fields are ignored, and a gender
// outside the suggested set is dropped.
func (r *Roster) Change(field, value string) {
	switch field {
	case FieldName:
		r.Form.Name = value
	case FieldEmail:
		r.Form.Email = value
	case FieldAge:
		r.Form.Age = value
	case FieldCourse:
		r.Form.Course = value
	case FieldGender:
		if err := r.validate.Var(value, genderRule); err != nil {
			r.log.Warn("ignoring unsupported gender", zap.String("gender", value))
			return
		}
		r.Form.Gender = value
	default:
		r.log.Debug("ignoring unknown form field", zap.String("field", field))
	}
}

// Submit creates a record from the form, or updates the one under edit.
// On success the form and edit id are cleared and the list is re-fetched;
// on failure the state is left untouched.
func (r *Roster) Submit(ctx context.Context) error {
	var err error
	if r.EditingID != "" {
		_, err = r.api.UpdateStudent(ctx, r.EditingID, r.Form.input())
	} else {
		_, err = r.api.CreateStudent(ctx, r.Form.input())
	}
	if err != nil {
		r.log.Error("failed to submit student",
			zap.String("editing_id", r.EditingID),
			zap.Error(err),
		)
		return err
	}

	r.Form = Form{}
	r.EditingID = ""
	return r.refresh(ctx)
}

// Edit loads s into the form and marks it as the record under edit.
func (r *Roster) Edit(s client.Student) {
	r.Form = Form{
		Name:   s.Name,
		Email:  s.Email,
		Age:    formatAge(s.Age),
		Course: s.Course,
		Gender: s.Gender,
	}
	r.EditingID = s.ID
}

// Delete removes the record with id and re-fetches the list.
func (r *Roster) Delete(ctx context.Context, id string) error {
	if err := r.api.DeleteStudent(ctx, id); err != nil {
		r.log.Error("failed to delete student", zap.String("id", id), zap.Error(err))
		return err
	}
	return r.refresh(ctx)
}

// Find returns the fetched record with id.
func (r *Roster) Find(id string) (client.Student, bool) {
	for _, s := range r.Students {
		if s.ID == id {
			return s, true
		}
	}
	return client.Student{}, false
}

// SubmitLabel is the caption of the form's submit action.
func (r *Roster) SubmitLabel() string {
	if r.EditingID != "" {
		return updateLabel
	}
	return addLabel
}

// Render writes the record list followed by the submit label.
func (r *Roster) Render(w io.Writer) error {
	if len(r.Students) == 0 {
		if _, err := fmt.Fprintln(w, emptyMessage); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tAGE\tCOURSE\tGENDER")
		for _, s := range r.Students {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Email, formatAge(s.Age), s.Course, s.Gender)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "[%s]\n", r.SubmitLabel())
	return err
}

func formatAge(age *float64) string {
	if age == nil {
		return ""
	}
	return strconv.FormatFloat(*age, 'f', -1, 64)
}
