package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/thought/pkg/entry"
	"tableflip.dev/thought/pkg/store"
)

type memorySource map[string]string

func (m memorySource) Read(_ context.Context, name string) ([]byte, error) {
	v, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return []byte(v), nil
}

func (m memorySource) String() string { return "memory" }

func days(c *Catalog) []int {
	out := make([]int, 0, c.Len())
	for _, r := range c.Records() {
		out = append(out, r.Day)
	}
	return out
}

func TestNewSortsAndKeepsFirstDuplicate(t *testing.T) {
	c := New([]entry.IndexRecord{
		{Day: 3, Title: "three"},
		{Day: 1, Title: "one"},
		{Day: 3, Title: "three again"},
		{Day: 2, Title: "two"},
	})

	assert.Equal(t, []int{1, 2, 3}, days(c))
	rec, ok := c.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "three", rec.Title)

	first, _ := c.First()
	last, _ := c.Last()
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, 3, last.Day)

	i, ok := c.IndexOf(2)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.False(t, c.Contains(4))
}

func TestLoadDropsInvalidElements(t *testing.T) {
	src := memorySource{store.ManifestName: `{"days": [
		{"day": 2, "title": "Two"},
		{"day": "x", "title": "Bad"},
		{"day": 1, "title": ""},
		{"day": 1, "title": "One"},
		{"day": 2, "title": "Dup"}
	]}`}

	c, err := Load(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, days(c))
	rec, _ := c.Lookup(2)
	assert.Equal(t, "Two", rec.Title)
}

func TestLoadFailures(t *testing.T) {
	cases := map[string]memorySource{
		"unreachable": {},
		"malformed":   {store.ManifestName: `{"days": [`},
		"empty":       {store.ManifestName: `{"days": [{"day": 1}]}`},
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := Load(context.Background(), src, nil)
			require.Error(t, err)
			assert.Nil(t, c)
			var le *LoadError
			require.True(t, errors.As(err, &le), "expected LoadError, got %T", err)
			assert.Equal(t, "memory", le.Source)
		})
	}

	_, err := Load(context.Background(), memorySource{store.ManifestName: `[]`}, nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Load(context.Background(), memorySource{}, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEmptyCatalogAccessors(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains(1))
	_, ok := c.First()
	assert.False(t, ok)
	assert.Nil(t, c.Records())
}
