package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplySuggestion(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		suggestion string
		want       string
	}{
		{name: "completes last token", query: "cat", suggestion: "category", want: "category"},
		{name: "appends when last token does not match", query: "cat foo", suggestion: "category", want: "cat foo category"},
		{name: "completes only the last token", query: "cat foo", suggestion: "food", want: "cat food"},
		{name: "case insensitive prefix", query: "the CAT", suggestion: "category", want: "the category"},
		{name: "empty query appends", query: "", suggestion: "category", want: "category"},
		{name: "whitespace query appends", query: "   ", suggestion: "category", want: "category"},
		{name: "collapses whitespace", query: "  big   ca ", suggestion: "cat", want: "big cat"},
		{name: "exact token is replaced", query: "cat", suggestion: "cat", want: "cat"},
		{name: "empty suggestion keeps tokens", query: "a  b", suggestion: "", want: "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplySuggestion(tt.query, tt.suggestion))
		})
	}
}

func TestLengthCountsRunes(t *testing.T) {
	assert.Equal(t, 2, Length("né"))
}

func TestClampWeight(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -1, want: 0},
		{in: 0, want: 0},
		{in: 0.05, want: 0.05},
		{in: 0.0523, want: 0.0523},
		{in: 0.25, want: 0.25},
		{in: 3, want: 0.25},
		{in: math.NaN(), want: DefaultBlendWeight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampWeight(tt.in), "ClampWeight(%v)", tt.in)
	}
}

func TestStepWeight(t *testing.T) {
	tests := []struct {
		in    float64
		steps int
		want  float64
	}{
		{in: 0.05, steps: 1, want: 0.055},
		{in: 0.05, steps: -1, want: 0.045},
		{in: 0.0523, steps: 0, want: 0.05},
		{in: 0.0523, steps: 1, want: 0.055},
		{in: 0.25, steps: 1, want: 0.25},
		{in: 0, steps: -1, want: 0},
		{in: 0.25, steps: -2, want: 0.24},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StepWeight(tt.in, tt.steps), "StepWeight(%v, %d)", tt.in, tt.steps)
	}
}

func TestValidWeight(t *testing.T) {
	assert.True(t, ValidWeight(0.25))
	assert.True(t, ValidWeight(0))
	assert.False(t, ValidWeight(0.2501))
	assert.False(t, ValidWeight(-0.001))
	assert.False(t, ValidWeight(math.NaN()))
}
