package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/fasb/pkg/cache"
)

func TestParseWeightKind(t *testing.T) {
	for _, tc := range []struct {
		input   string
		want    WeightKind
		wantErr bool
	}{
		{input: "", want: FacetCountingWeight},
		{input: "fc", want: FacetCountingWeight},
		{input: "--facet-counting", want: FacetCountingWeight},
		{input: "abs", want: AbsoluteWeight},
		{input: " Absolute ", want: AbsoluteWeight},
		{input: "supported", wantErr: true},
	} {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseWeightKind(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseModeKind(t *testing.T) {
	for _, tc := range []struct {
		input   string
		want    ModeKind
		wantErr bool
	}{
		{input: "", want: GoalOrientedMode},
		{input: "go", want: GoalOrientedMode},
		{input: "--sgo", want: StrictlyGoalOrientedMode},
		{input: "strictly-goal-oriented", want: StrictlyGoalOrientedMode},
		{input: "expl", want: ExploreMode},
		{input: "EXPLORE", want: ExploreMode},
		{input: "wander", wantErr: true},
	} {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseModeKind(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewMode(t *testing.T) {
	for _, tc := range []struct {
		mode   ModeKind
		weight WeightKind
		want   Mode
		name   string
		table  cache.Table
	}{
		{
			mode:   GoalOrientedMode,
			weight: FacetCountingWeight,
			want:   GoalOriented{W: FacetCounting{}},
			name:   "goal-oriented (facet-counting)",
			table:  cache.MaxFacetCounting,
		},
		{
			mode:   StrictlyGoalOrientedMode,
			weight: AbsoluteWeight,
			want:   StrictlyGoalOriented{W: Absolute{}},
			name:   "strictly-goal-oriented (absolute)",
			table:  cache.MaxAbsolute,
		},
		{
			mode:   ExploreMode,
			weight: AbsoluteWeight,
			want:   Explore{W: Absolute{}},
			name:   "explore (absolute)",
			table:  cache.MinAbsolute,
		},
		{
			mode:   ExploreMode,
			weight: FacetCountingWeight,
			want:   Explore{W: FacetCounting{}},
			name:   "explore (facet-counting)",
			table:  cache.MinFacetCounting,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMode(tc.mode, NewWeight(tc.weight))
			assert.Equal(t, tc.want, m)
			assert.Equal(t, tc.name, m.String())
			_, explore := m.(Explore)
			assert.Equal(t, tc.table, m.Weight().table(!explore))
		})
	}
}

func TestWithin(t *testing.T) {
	assert.True(t, within(0.5, 0.5, true))
	assert.True(t, within(0.5, 0.5, false))
	assert.True(t, within(0.7, 0.5, true))
	assert.False(t, within(0.7, 0.5, false))
}
