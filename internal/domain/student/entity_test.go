package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func numPtr(f float64) *float64 { return &f }

func TestNew(t *testing.T) {
	s := New(Fields{Name: strPtr("Ana"), Age: numPtr(21), Course: strPtr("CS")})

	assert.Empty(t, s.ID)
	assert.Equal(t, "Ana", s.Name)
	require.NotNil(t, s.Age)
	assert.Equal(t, 21.0, *s.Age)
	assert.Equal(t, "CS", s.Course)
	assert.Empty(t, s.Email)
	assert.Empty(t, s.Gender)
}

func TestMerge_KeepsAbsentFields(t *testing.T) {
	s := New(Fields{Name: strPtr("Ana"), Age: numPtr(21), Course: strPtr("CS"), Gender: strPtr(GenderFemale)})

	s.Merge(Fields{Age: numPtr(22), Email: strPtr("")})

	assert.Equal(t, "Ana", s.Name)
	assert.Equal(t, 22.0, *s.Age)
	assert.Equal(t, "CS", s.Course)
	assert.Equal(t, GenderFemale, s.Gender)
	assert.Empty(t, s.Email)
}

func TestMerge_DoesNotAliasInput(t *testing.T) {
	age := 30.0
	s := New(Fields{Age: &age})
	age = 99

	assert.Equal(t, 30.0, *s.Age)
}

func TestFields_IsEmpty(t *testing.T) {
	assert.True(t, Fields{}.IsEmpty())
	assert.False(t, Fields{Gender: strPtr("Other")}.IsEmpty())
}
