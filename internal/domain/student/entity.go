package student

// Student is a single student record. Every field except ID is optional
// and freely mutable; ID is assigned by the store on creation.
type Student struct {
	ID     string
	Name   string
	Email  string
	Age    *float64
	Course string
	Gender string
}

// Fields is a partial set of student attributes. A nil field is absent:
// Create leaves it unset and Merge leaves the stored value untouched.
type Fields struct {
	Name   *string
	Email  *string
	Age    *float64
	Course *string
	Gender *string
}

// Suggested gender values offered to clients. The service stores any text.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// New builds an unsaved record from f.
func New(f Fields) Student {
	var s Student
	s.Merge(f)
	return s
}

// Merge overwrites the fields present in f and keeps the rest.
func (s *Student) Merge(f Fields) {
	if f.Name != nil {
		s.Name = *f.Name
	}
	if f.Email != nil {
		s.Email = *f.Email
	}
	if f.Age != nil {
		age := *f.Age
		s.Age = &age
	}
	if f.Course != nil {
		s.Course = *f.Course
	}
	if f.Gender != nil {
		s.Gender = *f.Gender
	}
}

// IsEmpty reports whether f carries no fields at all.
func (f Fields) IsEmpty() bool {
	return f.Name == nil && f.Email == nil && f.Age == nil && f.Course == nil && f.Gender == nil
}
