// Package directory holds the roster's employee and location name sets:
// plain unique names with insertion order preserved for display.
package directory

import (
	"github.com/shriajj/roster-backend-go/internal/pkg/validator"
)

// NameSet is an ordered collection of unique names.
type NameSet struct {
	names []string
}

// NewNameSet copies the given names, dropping duplicates while keeping the
// first occurrence's position.
func NewNameSet(names []string) *NameSet {
	s := &NameSet{}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Names returns a copy of the set in insertion order.
func (s *NameSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Contains reports whether name is in the set.
func (s *NameSet) Contains(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Add appends name unless it is already present. Reports whether the set
// changed.
func (s *NameSet) Add(name string) bool {
	if s.Contains(name) {
		return false
	}
	s.names = append(s.names, name)
	return true
}

// Len returns the number of names in the set.
func (s *NameSet) Len() int {
	return len(s.names)
}

type SaveNamesRequest struct {
	Names []string `json:"names"`
}

func (r *SaveNamesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Names) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "names",
			Message: "names is required",
		})
	}
	for _, n := range r.Names {
		if validator.IsEmpty(n) {
			errs = append(errs, validator.ValidationError{
				Field:   "names",
				Message: "names must not contain blank entries",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
