// Package skills compares skill names without regard to casing while keeping
// the spelling that should be shown to users.
package skills

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key returns the comparison key of a skill name.
func Key(skill string) string {
	// Casers keep state and must not be shared between goroutines.
	return cases.Fold().String(strings.TrimSpace(skill))
}

// Set is an insertion-ordered, case-insensitive collection of skill names.
// The first spelling added for a key is the canonical one.
type Set struct {
	keys  []string
	names map[string]string
}

// New creates a set from skills, skipping blank entries.
func New(skills ...string) *Set {
	s := &Set{names: make(map[string]string, len(skills))}
	for _, skill := range skills {
		s.add(skill)
	}
	return s
}

func (s *Set) add(skill string) bool {
	name := strings.TrimSpace(skill)
	if name == "" {
		return false
	}

	key := Key(name)
	if _, ok := s.names[key]; ok {
		return false
	}

	s.names[key] = name
	s.keys = append(s.keys, key)
	return true
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

func (s *Set) Contains(skill string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[Key(skill)]
	return ok
}

// Canonical returns the stored spelling for skill, if present.
func (s *Set) Canonical(skill string) (string, bool) {
	if s == nil {
		return "", false
	}
	name, ok := s.names[Key(skill)]
	return name, ok
}

// Items returns canonical names in insertion order.
func (s *Set) Items() []string {
	if s.Len() == 0 {
		return []string{}
	}

	items := make([]string, 0, len(s.keys))
	for _, key := range s.keys {
		items = append(items, s.names[key])
	}
	return items
}

// Intersect returns the skills of s that are also in other.
// Order and spelling come from s.
func (s *Set) Intersect(other *Set) *Set {
	return s.filter(func(key string) bool {
		return other != nil && other.names[key] != ""
	})
}

// Difference returns the skills of s that are missing from other.
func (s *Set) Difference(other *Set) *Set {
	return s.filter(func(key string) bool {
		return other == nil || other.names[key] == ""
	})
}

// Merge adds skills from other whose keys are not yet present.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		s.add(other.names[key])
	}
}

func (s *Set) filter(keep func(key string) bool) *Set {
	result := New()
	if s == nil {
		return result
	}

	for _, key := range s.keys {
		if keep(key) {
			result.add(s.names[key])
		}
	}
	return result
}
