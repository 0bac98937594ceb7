package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/model"
)

func newValidator() *NameValidator {
	return NewNameValidator(config.ValidatorConfig{
		MinLength: 4,
		MaxWords:  10,
		Blacklist: []string{"guide", "registration", "usajili", "we are"},
	})
}

func TestValidSchoolNames(t *testing.T) {
	t.Parallel()

	v := newValidator()

	tests := []struct {
		name string
		want bool
	}{
		{"Mwenge Primary School", true},
		{"St. Joseph Academy", true},
		{"Shule ya Msingi Kibasila", true},
		{"Tumaini Secondary", true},
		{"Mlimani College", true},
		{"Dar Institute of Technology", true},
		// No schooling keyword.
		{"Kariakoo Traders", false},
		// Blacklisted substrings.
		{"School Registration Guide", false},
		{"Usajili wa Shule", false},
		// Too short, even with keyword context collapsed away.
		{"Ab", false},
		// Too many words.
		{"The Very Long Name Of A School That Keeps On Going Forever", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, v.Valid(tt.name, model.TypeSchool))
		})
	}
}

func TestValidBusinessNotKeywordGated(t *testing.T) {
	t.Parallel()

	v := newValidator()
	assert.True(t, v.Valid("Kariakoo Traders", model.TypeBusiness))
	assert.True(t, v.Valid("Azam Media", model.TypeBusiness))
	assert.False(t, v.Valid("We Are Open", model.TypeBusiness))
}

func TestValidMinLengthBoundary(t *testing.T) {
	t.Parallel()

	v := newValidator()
	// Length is measured after whitespace collapse.
	assert.False(t, v.Valid("a  b", model.TypeBusiness)) // collapses to "a b", len 3
	assert.True(t, v.Valid("a  bc", model.TypeBusiness)) // collapses to "a bc", len 4
}

func TestValidatorDefaults(t *testing.T) {
	t.Parallel()

	v := NewNameValidator(config.ValidatorConfig{})
	assert.True(t, v.Valid("Mwenge Primary School", model.TypeSchool))
	assert.False(t, v.Valid("Abc", model.TypeSchool))
}
