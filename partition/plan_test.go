package partition_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/distmul/partition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Scenarios(t *testing.T) {
	cases := []struct {
		rows, participants int
		counts, offsets    []int
	}{
		{rows: 5, participants: 3, counts: []int{2, 2, 1}, offsets: []int{0, 2, 4}},
		{rows: 1, participants: 4, counts: []int{1, 0, 0, 0}, offsets: []int{0, 1, 1, 1}},
		{rows: 7, participants: 1, counts: []int{7}, offsets: []int{0}},
		{rows: 0, participants: 2, counts: []int{0, 0}, offsets: []int{0, 0}},
		{rows: 6, participants: 3, counts: []int{2, 2, 2}, offsets: []int{0, 2, 4}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d/%d", tc.rows, tc.participants), func(t *testing.T) {
			plan, err := partition.New(tc.rows, tc.participants)
			require.NoError(t, err)
			assert.Equal(t, tc.counts, plan.Counts())
			assert.Equal(t, tc.offsets, plan.Offsets())
			assert.Equal(t, tc.participants, plan.Size())
			assert.Equal(t, tc.rows, plan.Total())
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := partition.New(-1, 2)
	assert.ErrorIs(t, err, partition.ErrNegativeRows)
	_, err = partition.New(3, 0)
	assert.ErrorIs(t, err, partition.ErrNoParticipants)
}

// TestNew_Invariants sweeps small (rows, participants) pairs and checks the
// covering and balance invariants on every plan.
func TestNew_Invariants(t *testing.T) {
	for rows := 0; rows <= 40; rows++ {
		for p := 1; p <= rows+3; p++ {
			plan, err := partition.New(rows, p)
			require.NoError(t, err)
			require.NoError(t, plan.Validate(rows), "rows=%d p=%d", rows, p)
			require.True(t, plan.Balanced(), "rows=%d p=%d", rows, p)

			// Remainder rows go to the lowest ranks: counts never increase.
			counts := plan.Counts()
			for i := 1; i < len(counts); i++ {
				require.LessOrEqual(t, counts[i], counts[i-1], "rows=%d p=%d", rows, p)
			}
		}
	}
}

func TestPlan_Scale(t *testing.T) {
	plan, err := partition.New(5, 3)
	require.NoError(t, err)

	elems, err := plan.Scale(10)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 20, 10}, elems.Counts())
	assert.Equal(t, []int{0, 20, 40}, elems.Offsets())
	require.NoError(t, elems.Validate(50))
	assert.Equal(t, []int{2, 2, 1}, plan.Counts(), "receiver must be untouched")

	zero, err := plan.Scale(0)
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Total())

	_, err = plan.Scale(-1)
	assert.ErrorIs(t, err, partition.ErrNegativeWidth)
}

func TestPlan_ValidateRejects(t *testing.T) {
	cases := map[string]partition.Plan{
		"empty":    {},
		"gap":      {{Count: 2, Offset: 0}, {Count: 1, Offset: 3}},
		"overlap":  {{Count: 2, Offset: 0}, {Count: 1, Offset: 1}},
		"negative": {{Count: -1, Offset: 0}, {Count: 4, Offset: -1}},
		"short":    {{Count: 1, Offset: 0}, {Count: 1, Offset: 1}},
		"nonzero0": {{Count: 3, Offset: 1}},
	}
	for name, plan := range cases {
		assert.ErrorIs(t, plan.Validate(3), partition.ErrInvalidPlan, name)
	}
}

func TestPlan_BlockAndEqual(t *testing.T) {
	plan, err := partition.New(5, 3)
	require.NoError(t, err)

	b, ok := plan.Block(2)
	require.True(t, ok)
	assert.Equal(t, partition.Block{Count: 1, Offset: 4}, b)
	_, ok = plan.Block(3)
	assert.False(t, ok)

	again, _ := partition.New(5, 3)
	other, _ := partition.New(5, 2)
	assert.True(t, plan.Equal(again))
	assert.False(t, plan.Equal(other))
	assert.True(t, partition.Plan{{Count: 1}}.Balanced())
	assert.False(t, partition.Plan{{Count: 3}, {Count: 1, Offset: 3}}.Balanced())
}
