package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/basketball-team-service/internal/model"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in      string
		want    model.Period
		wantErr bool
	}{
		{"H1", model.PeriodH1, false},
		{"h3", model.PeriodH3, false},
		{" H4 ", model.PeriodH4, false},
		{"OT", model.PeriodOT, false},
		{"ot2", model.Period("OT2"), false},
		{"OT10", model.Period("OT10"), false},
		{"OT1", "", true}, // first overtime is plain OT
		{"OT0", "", true},
		{"H5", "", true},
		{"", "", true},
		{"first half", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := model.ParsePeriod(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPeriodOrder(t *testing.T) {
	ordered := []model.Period{
		model.PeriodH1, model.PeriodH2, model.PeriodH3, model.PeriodH4,
		model.PeriodOT, model.Period("OT2"), model.Period("OT3"),
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Order(), ordered[i].Order(),
			"%s must sort before %s", ordered[i-1], ordered[i])
	}
	// Labels outside the closed set sort last instead of crashing.
	assert.Greater(t, model.Period("halftime").Order(), model.Period("OT9").Order())
}

func TestMatchRecordPeriod_AppendAndReplace(t *testing.T) {
	var m model.Match

	h1 := model.PeriodRecord{Period: model.PeriodH1, TeamAScore: 20, TeamBScore: 18, TeamAFouls: 3, TeamBFouls: 2}
	m.RecordPeriod(h1)
	require.Len(t, m.PeriodsHistory, 1)
	assert.Equal(t, h1, m.PeriodsHistory[0])
	assert.Equal(t, 20, m.TeamAScore)
	assert.Equal(t, 18, m.TeamBScore)
	assert.Equal(t, 3, m.TeamAFouls)
	assert.Equal(t, 2, m.TeamBFouls)

	// Correcting H1 replaces in place, keeping array position.
	h1fix := model.PeriodRecord{Period: model.PeriodH1, TeamAScore: 25, TeamBScore: 18, TeamAFouls: 4, TeamBFouls: 2}
	m.RecordPeriod(h1fix)
	require.Len(t, m.PeriodsHistory, 1)
	assert.Equal(t, h1fix, m.PeriodsHistory[0])
	assert.Equal(t, 25, m.TeamAScore)

	h2 := model.PeriodRecord{Period: model.PeriodH2, TeamAScore: 42, TeamBScore: 40, TeamAFouls: 5, TeamBFouls: 4}
	m.RecordPeriod(h2)
	require.Len(t, m.PeriodsHistory, 2)
	assert.Equal(t, model.PeriodH1, m.PeriodsHistory[0].Period)
	assert.Equal(t, model.PeriodH2, m.PeriodsHistory[1].Period)
	assert.Equal(t, 42, m.TeamAScore)
}

func TestMatchRecordPeriod_Idempotent(t *testing.T) {
	var m model.Match
	rec := model.PeriodRecord{Period: model.PeriodH2, TeamAScore: 30, TeamBScore: 28, TeamAFouls: 2, TeamBFouls: 1}
	m.RecordPeriod(rec)
	m.RecordPeriod(rec)
	require.Len(t, m.PeriodsHistory, 1)
	assert.Equal(t, rec, m.PeriodsHistory[0])
	assert.Equal(t, 30, m.TeamAScore)
	assert.Equal(t, 28, m.TeamBScore)
}

func TestMatchRecordPeriod_InsertionOrderKept(t *testing.T) {
	// A scorer recording H2 before H1 leaves them in that stored order;
	// only the derived view sorts canonically.
	var m model.Match
	m.RecordPeriod(model.PeriodRecord{Period: model.PeriodH2, TeamAScore: 40, TeamBScore: 35})
	m.RecordPeriod(model.PeriodRecord{Period: model.PeriodH1, TeamAScore: 22, TeamBScore: 19})
	require.Len(t, m.PeriodsHistory, 2)
	assert.Equal(t, model.PeriodH2, m.PeriodsHistory[0].Period)
	assert.Equal(t, model.PeriodH1, m.PeriodsHistory[1].Period)
}

func TestPeriodDeltas(t *testing.T) {
	history := []model.PeriodRecord{
		{Period: model.PeriodH1, TeamAScore: 25, TeamBScore: 18, TeamAFouls: 4, TeamBFouls: 2},
		{Period: model.PeriodH2, TeamAScore: 42, TeamBScore: 40, TeamAFouls: 5, TeamBFouls: 4},
	}
	deltas := model.PeriodDeltas(history)
	require.Len(t, deltas, 2)
	// First record subtracts the 0-0 start, so delta equals cumulative.
	assert.Equal(t, model.PeriodDelta{Period: model.PeriodH1, TeamAScore: 25, TeamBScore: 18}, deltas[0])
	assert.Equal(t, model.PeriodDelta{Period: model.PeriodH2, TeamAScore: 17, TeamBScore: 22}, deltas[1])
}

func TestPeriodDeltas_SortsOutOfOrderHistory(t *testing.T) {
	history := []model.PeriodRecord{
		{Period: model.PeriodOT, TeamAScore: 80, TeamBScore: 78},
		{Period: model.PeriodH4, TeamAScore: 72, TeamBScore: 72},
		{Period: model.PeriodH2, TeamAScore: 40, TeamBScore: 38},
	}
	deltas := model.PeriodDeltas(history)
	require.Len(t, deltas, 3)
	assert.Equal(t, model.PeriodH2, deltas[0].Period)
	assert.Equal(t, model.PeriodH4, deltas[1].Period)
	assert.Equal(t, model.PeriodOT, deltas[2].Period)
	assert.Equal(t, 32, deltas[1].TeamAScore)
	assert.Equal(t, 8, deltas[2].TeamAScore)
	assert.Equal(t, 6, deltas[2].TeamBScore)
}

func TestPeriodDeltas_Empty(t *testing.T) {
	deltas := model.PeriodDeltas(nil)
	require.NotNil(t, deltas)
	assert.Empty(t, deltas)
}

func TestStatDeltasFields(t *testing.T) {
	d := model.StatDeltas{Points: 2, TwoPointsMade: 1, TwoPointsAttempted: 1}
	fields := d.Fields()
	assert.Equal(t, map[string]int{"points": 2, "two_points_made": 1, "two_points_attempted": 1}, fields)
	assert.Empty(t, model.StatDeltas{}.Fields())
	assert.ElementsMatch(t, []string{"fouls"}, model.StatDeltas{Fouls: -1, Points: 3}.Negative())
}
