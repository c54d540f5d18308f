package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Period identifies one scoring segment of a match: four quarters plus any
// number of overtimes. The set is closed; free-form labels are rejected at
// parse time so the canonical ordering below is total.
type Period string

const (
	PeriodH1 Period = "H1"
	PeriodH2 Period = "H2"
	PeriodH3 Period = "H3"
	PeriodH4 Period = "H4"
	PeriodOT Period = "OT"
)

// ParsePeriod normalizes and validates a period label. Accepted forms are
// H1..H4, OT (first overtime) and OTn for n >= 2.
func ParsePeriod(s string) (Period, error) {
	label := strings.ToUpper(strings.TrimSpace(s))
	switch label {
	case "H1", "H2", "H3", "H4", "OT":
		return Period(label), nil
	}
	if rest, ok := strings.CutPrefix(label, "OT"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 2 {
			return Period(label), nil
		}
	}
	return "", fmt.Errorf("unknown period label %q", s)
}

// Order returns the canonical position of the period: H1 < H2 < H3 < H4 < OT < OT2 < ...
// Unparseable labels sort last; they cannot enter a match through the service
// boundary, so this is a safety net for hand-edited documents only.
func (p Period) Order() int {
	switch p {
	case PeriodH1:
		return 1
	case PeriodH2:
		return 2
	case PeriodH3:
		return 3
	case PeriodH4:
		return 4
	case PeriodOT:
		return 5
	}
	if rest, ok := strings.CutPrefix(string(p), "OT"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 2 {
			return 4 + n
		}
	}
	return 1 << 20
}

// Overtime reports whether the period is an overtime segment.
func (p Period) Overtime() bool { return strings.HasPrefix(string(p), "OT") }

// PeriodRecord is the stored snapshot taken when a period is closed out.
// The four numeric fields are cumulative totals as of that moment, not the
// points scored during the period; see PeriodDeltas for the per-period view.
type PeriodRecord struct {
	Period     Period `json:"period" bson:"period"`
	TeamAScore int    `json:"team_a_score" bson:"team_a_score"`
	TeamBScore int    `json:"team_b_score" bson:"team_b_score"`
	TeamAFouls int    `json:"team_a_fouls" bson:"team_a_fouls"`
	TeamBFouls int    `json:"team_b_fouls" bson:"team_b_fouls"`
}

// PeriodDelta is the derived, display-only view of one period: the points
// scored during that period alone. It is never persisted; deriving it from
// PeriodRecord is the job of PeriodDeltas.
type PeriodDelta struct {
	Period     Period `json:"period"`
	TeamAScore int    `json:"team_a_score"`
	TeamBScore int    `json:"team_b_score"`
}

// RecordPeriod upserts one period snapshot into the match history and mirrors
// its cumulative fields onto the running totals.
//
// If the history already holds a record with the same label it is replaced in
// place, keeping its array position; otherwise the record is appended. Either
// way the match's four running-total fields are overwritten with the record's
// values, which is why callers must always pass cumulative totals. The
// operation is idempotent for identical input.
func (m *Match) RecordPeriod(rec PeriodRecord) {
	replaced := false
	for i := range m.PeriodsHistory {
		if m.PeriodsHistory[i].Period == rec.Period {
			m.PeriodsHistory[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		m.PeriodsHistory = append(m.PeriodsHistory, rec)
	}
	m.TeamAScore = rec.TeamAScore
	m.TeamBScore = rec.TeamBScore
	m.TeamAFouls = rec.TeamAFouls
	m.TeamBFouls = rec.TeamBFouls
}

// PeriodDeltas derives the per-period scores from a cumulative history.
// The history is sorted by canonical period order (stored order is insertion
// order, which callers may have produced out of sequence), then each record's
// delta is its cumulative score minus the previous record's. The first record
// subtracts the 0-0 start, so its delta equals its cumulative values.
func PeriodDeltas(history []PeriodRecord) []PeriodDelta {
	if len(history) == 0 {
		return []PeriodDelta{}
	}
	sorted := make([]PeriodRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Period.Order() < sorted[j].Period.Order()
	})

	deltas := make([]PeriodDelta, 0, len(sorted))
	lastA, lastB := 0, 0
	for _, rec := range sorted {
		deltas = append(deltas, PeriodDelta{
			Period:     rec.Period,
			TeamAScore: rec.TeamAScore - lastA,
			TeamBScore: rec.TeamBScore - lastB,
		})
		lastA, lastB = rec.TeamAScore, rec.TeamBScore
	}
	return deltas
}
