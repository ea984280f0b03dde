package sampler

import (
	"fmt"
	"testing"

	"cobible/internal/catalog"
	"cobible/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questions() *catalog.Catalog[domain.QuizQuestion] {
	var records []domain.QuizQuestion
	add := func(lang, cat string, n int) {
		for i := 0; i < n; i++ {
			records = append(records, domain.QuizQuestion{
				Language: lang,
				Category: cat,
				Text:     fmt.Sprintf("%s/%s/%d", lang, cat, i),
			})
		}
	}
	add("Java", "Basics", 5)
	add("Java", "Collections", 4)
	add("Java", "Errors", 3)
	add("Python", "Basics", 6)
	return catalog.Index(records)
}

func TestSample_SizeAndMembership(t *testing.T) {
	c := questions()
	s := New()

	tests := []struct {
		name       string
		language   string
		categories []string
		count      int
		want       int
	}{
		{name: "count below pool", language: "Java", categories: []string{"Basics", "Errors"}, count: 3, want: 3},
		{name: "count above pool", language: "Java", categories: []string{"Basics", "Errors"}, count: 10, want: 8},
		{name: "count equals pool", language: "Java", categories: []string{"Collections"}, count: 4, want: 4},
		{name: "empty category set", language: "Java", categories: nil, count: 5, want: 0},
		{name: "zero count", language: "Java", categories: []string{"Basics"}, count: 0, want: 0},
		{name: "negative count", language: "Java", categories: []string{"Basics"}, count: -1, want: 0},
		{name: "unknown language", language: "Go", categories: []string{"Basics"}, count: 5, want: 0},
		{name: "case sensitive language", language: "python", categories: []string{"Basics"}, count: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Repeat to cover several random permutations.
			for run := 0; run < 20; run++ {
				got := Sample(s, c, tt.language, tt.categories, tt.count)
				require.NotNil(t, got)
				require.Len(t, got, tt.want)

				seen := map[string]bool{}
				for _, q := range got {
					assert.Equal(t, tt.language, q.Language)
					assert.Contains(t, tt.categories, q.Category)
					assert.False(t, seen[q.Text], "duplicate record %s", q.Text)
					seen[q.Text] = true
				}
			}
		})
	}
}

func TestSample_UsesInjectedShuffle(t *testing.T) {
	c := questions()

	reverse := NewWithShuffle(func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	})

	got := Sample(reverse, c, "Java", []string{"Errors"}, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "Java/Errors/2", got[0].Text)
	assert.Equal(t, "Java/Errors/1", got[1].Text)
}

func TestSample_DoesNotMutateCatalog(t *testing.T) {
	c := questions()
	before := c.Records("Java", "Basics")

	_ = Sample(New(), c, "Java", []string{"Basics"}, 5)

	assert.Equal(t, before, c.Records("Java", "Basics"))
}
