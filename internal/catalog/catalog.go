// Package catalog indexes records by language and category.
package catalog

import (
	"sort"

	"cobible/internal/domain"

	"github.com/samber/lo"
)

// Catalog is an immutable language -> category -> records index. Language and
// category keys are matched exactly and case-sensitively.
type Catalog[T domain.Record] struct {
	index map[string]map[string][]T
	size  int
}

// Index builds a catalog. Records keep their input order within a category.
func Index[T domain.Record](records []T) *Catalog[T] {
	c := &Catalog[T]{
		index: make(map[string]map[string][]T),
		size:  len(records),
	}
	for _, r := range records {
		lang := r.RecordLanguage()
		byCategory, ok := c.index[lang]
		if !ok {
			byCategory = make(map[string][]T)
			c.index[lang] = byCategory
		}
		cat := r.RecordCategory()
		byCategory[cat] = append(byCategory[cat], r)
	}
	return c
}

// Len returns the number of indexed records.
func (c *Catalog[T]) Len() int {
	return c.size
}

// Languages returns every language in ascending order.
func (c *Catalog[T]) Languages() []string {
	langs := lo.Keys(c.index)
	sort.Strings(langs)
	return langs
}

// Categories returns the categories of a language in ascending order. An
// unknown language yields an empty slice.
func (c *Catalog[T]) Categories(language string) []string {
	cats := lo.Keys(c.index[language])
	sort.Strings(cats)
	return cats
}

// Records returns a copy of the records of one language and category.
func (c *Catalog[T]) Records(language, category string) []T {
	return append([]T{}, c.index[language][category]...)
}

// Filter returns the records of a language whose category is in categories,
// concatenated in ascending category order. An empty category set yields an
// empty slice.
func (c *Catalog[T]) Filter(language string, categories []string) []T {
	wanted := lo.Uniq(categories)
	sort.Strings(wanted)

	out := []T{}
	for _, cat := range wanted {
		out = append(out, c.index[language][cat]...)
	}
	return out
}
