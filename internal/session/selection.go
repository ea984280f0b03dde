package session

import (
	"sort"

	"github.com/samber/lo"
)

// Selection tracks which of a language's categories are chosen. The first
// available category starts out selected.
type Selection struct {
	available []string
	selected  map[string]struct{}
}

// NewSelection creates a selection over the available categories.
func NewSelection(available []string) *Selection {
	s := &Selection{
		available: append([]string{}, available...),
		selected:  make(map[string]struct{}),
	}
	if len(available) > 0 {
		s.selected[available[0]] = struct{}{}
	}
	return s
}

// Available returns the selectable categories.
func (s *Selection) Available() []string {
	return append([]string{}, s.available...)
}

// Toggle flips the membership of category. Unknown categories are ignored.
func (s *Selection) Toggle(category string) bool {
	if !lo.Contains(s.available, category) {
		return false
	}
	if _, ok := s.selected[category]; ok {
		delete(s.selected, category)
	} else {
		s.selected[category] = struct{}{}
	}
	return true
}

// IsSelected reports whether category is selected.
func (s *Selection) IsSelected(category string) bool {
	_, ok := s.selected[category]
	return ok
}

// Selected returns the selected categories in ascending order.
func (s *Selection) Selected() []string {
	out := lo.Keys(s.selected)
	sort.Strings(out)
	return out
}
