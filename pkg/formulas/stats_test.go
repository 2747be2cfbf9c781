package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single value", []float64{5}, 5},
		{"mixed values", []float64{10, 20, 30}, 20},
		{"with zeros", []float64{0, 0, 6}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Mean(tt.data), 1e-9)
		})
	}
}

func TestPopStdDev(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"identical values", []float64{4, 4, 4}, 0},
		// Population form: variance of {2, 4, 4, 4, 5, 5, 7, 9} is 4.
		{"known distribution", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PopStdDev(tt.data), 1e-9)
		})
	}
}

func TestZScore(t *testing.T) {
	t.Run("nil when std is zero", func(t *testing.T) {
		assert.Nil(t, ZScore(10, 10, 0))
	})

	t.Run("standard deviations from mean", func(t *testing.T) {
		z := ZScore(12, 10, 2)
		require.NotNil(t, z)
		assert.InDelta(t, 1.0, *z, 1e-9)

		z = ZScore(7, 10, 2)
		require.NotNil(t, z)
		assert.InDelta(t, -1.5, *z, 1e-9)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, -1.23, Round2(-1.234))
	assert.Equal(t, 0.0, Round2(0.001))
}

func TestDenseRanks(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected []int
	}{
		{"empty", nil, []int{}},
		{"distinct values", []float64{100, 90, 80}, []int{1, 2, 3}},
		{"ties share rank without gaps", []float64{100, 100, 80}, []int{1, 1, 2}},
		{"all tied", []float64{50, 50, 50}, []int{1, 1, 1}},
		{"ties in the middle", []float64{9, 7, 7, 7, 3}, []int{1, 2, 2, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranks := DenseRanks(tt.values)
			require.Len(t, ranks, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want, ranks[i])
			}
		})
	}
}

func TestDescendingRank(t *testing.T) {
	values := []float64{30, 10, 20, 20}

	assert.Equal(t, 1, DescendingRank(values, 30))
	assert.Equal(t, 2, DescendingRank(values, 20)) // first occurrence wins
	assert.Equal(t, 4, DescendingRank(values, 10))
	assert.Equal(t, 0, DescendingRank(nil, 5))
}
