package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register("reports.test", func(ctx context.Context) (interface{}, error) {
		return 42, nil
	})

	handler, err := reg.Resolve("reports.test")
	require.NoError(t, err)

	result, err := handler(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestRegistryResolveUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Resolve("no.such.job")
	assert.Error(t, err)
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register("b", func(ctx context.Context) (interface{}, error) { return nil, nil })
	reg.Register("a", func(ctx context.Context) (interface{}, error) { return nil, nil })

	assert.ElementsMatch(t, []string{"a", "b"}, reg.Names())
}

func TestCurrentTerm(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		term string
		year string
	}{
		{"january", time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "Term 1", "2026"},
		{"april boundary", time.Date(2026, time.April, 30, 23, 59, 0, 0, time.UTC), "Term 1", "2026"},
		{"may", time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), "Term 2", "2026"},
		{"august boundary", time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), "Term 2", "2026"},
		{"september", time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), "Term 3", "2026"},
		{"december", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "Term 3", "2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, year := CurrentTerm(tt.now)
			assert.Equal(t, tt.term, term)
			assert.Equal(t, tt.year, year)
		})
	}
}
