// Package validate filters candidate organization names before they
// enter the aggregation pipeline.
package validate

import (
	"strings"

	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/model"
)

// schoolKeywords must appear (at least one) in any school-type name.
// Includes Swahili equivalents used by local directories.
var schoolKeywords = []string{
	"school", "academy", "shule", "primary", "secondary", "college", "institute",
}

// NameValidator decides whether a candidate name looks like a real
// organization. It is pure: the same name and type always yield the
// same verdict.
type NameValidator struct {
	minLength int
	maxWords  int
	blacklist []string
}

// NewNameValidator builds a validator from configuration.
func NewNameValidator(cfg config.ValidatorConfig) *NameValidator {
	v := &NameValidator{
		minLength: cfg.MinLength,
		maxWords:  cfg.MaxWords,
		blacklist: make([]string, 0, len(cfg.Blacklist)),
	}
	if v.minLength <= 0 {
		v.minLength = 4
	}
	if v.maxWords <= 0 {
		v.maxWords = 10
	}
	for _, term := range cfg.Blacklist {
		v.blacklist = append(v.blacklist, strings.ToLower(term))
	}
	return v
}

// Valid applies all filters: collapsed length window, word count cap,
// blacklist substring rejection, and the school keyword requirement.
// Business names are deliberately not keyword-gated; they vary too
// widely for a term list to be useful.
func (v *NameValidator) Valid(name string, orgType model.OrgType) bool {
	cleaned := strings.Join(strings.Fields(name), " ")
	if len(cleaned) < v.minLength {
		return false
	}

	if len(strings.Fields(cleaned)) > v.maxWords {
		return false
	}

	lower := strings.ToLower(cleaned)
	for _, term := range v.blacklist {
		if strings.Contains(lower, term) {
			return false
		}
	}

	if orgType == model.TypeSchool {
		found := false
		for _, kw := range schoolKeywords {
			if strings.Contains(lower, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
