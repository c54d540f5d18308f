package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
	"github.com/maxviazov/basketball-team-service/internal/service"
)

type fakeMatchRepo struct {
	matches  map[primitive.ObjectID]model.Match
	replaces int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[primitive.ObjectID]model.Match{}}
}

func (f *fakeMatchRepo) Create(_ context.Context, m model.Match) (model.Match, error) {
	m.ID = primitive.NewObjectID()
	if m.PeriodsHistory == nil {
		m.PeriodsHistory = []model.PeriodRecord{}
	}
	f.matches[m.ID] = m
	return m, nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id primitive.ObjectID) (model.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return model.Match{}, repository.ErrNotFound
	}
	return m, nil
}

func (f *fakeMatchRepo) Replace(_ context.Context, m model.Match) (model.Match, error) {
	if _, ok := f.matches[m.ID]; !ok {
		return model.Match{}, repository.ErrNotFound
	}
	f.replaces++
	f.matches[m.ID] = m
	return m, nil
}

func (f *fakeMatchRepo) ListByTeam(_ context.Context, teamID primitive.ObjectID, _ repository.Page) (repository.PageResult[model.Match], error) {
	var res repository.PageResult[model.Match]
	for _, m := range f.matches {
		if m.TeamID == teamID {
			res.Items = append(res.Items, m)
		}
	}
	res.Total = len(res.Items)
	return res, nil
}

var _ repository.MatchRepository = (*fakeMatchRepo)(nil)

type fakeTeamRepo struct{ exist map[primitive.ObjectID]bool }

func (f *fakeTeamRepo) Create(_ context.Context, t model.Team) (model.Team, error) {
	return t, nil
}
func (f *fakeTeamRepo) GetByID(_ context.Context, id primitive.ObjectID) (model.Team, error) {
	if f.exist[id] {
		return model.Team{ID: id, Name: "T"}, nil
	}
	return model.Team{}, repository.ErrNotFound
}
func (f *fakeTeamRepo) ListByUser(context.Context, primitive.ObjectID, repository.Page) (repository.PageResult[model.Team], error) {
	return repository.PageResult[model.Team]{}, nil
}
func (f *fakeTeamRepo) Update(_ context.Context, t model.Team) (model.Team, error) { return t, nil }

var _ repository.TeamRepository = (*fakeTeamRepo)(nil)

type fakeStatsRepo struct {
	docs map[primitive.ObjectID]model.PlayerStats
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{docs: map[primitive.ObjectID]model.PlayerStats{}}
}

func (f *fakeStatsRepo) InsertMany(_ context.Context, docs []model.PlayerStats) ([]model.PlayerStats, error) {
	for i := range docs {
		docs[i].ID = primitive.NewObjectID()
		f.docs[docs[i].ID] = docs[i]
	}
	return docs, nil
}
func (f *fakeStatsRepo) GetByID(_ context.Context, id primitive.ObjectID) (model.PlayerStats, error) {
	d, ok := f.docs[id]
	if !ok {
		return model.PlayerStats{}, repository.ErrNotFound
	}
	return d, nil
}
func (f *fakeStatsRepo) Increment(_ context.Context, id primitive.ObjectID, deltas model.StatDeltas) (model.PlayerStats, error) {
	d, ok := f.docs[id]
	if !ok {
		return model.PlayerStats{}, repository.ErrNotFound
	}
	d.Points += deltas.Points
	d.Fouls += deltas.Fouls
	d.Rebounds += deltas.Rebounds
	f.docs[id] = d
	return d, nil
}
func (f *fakeStatsRepo) ListByMatch(_ context.Context, matchID primitive.ObjectID) ([]model.PlayerStats, error) {
	out := []model.PlayerStats{}
	for _, d := range f.docs {
		if d.MatchID == matchID {
			out = append(out, d)
		}
	}
	return out, nil
}

var _ repository.StatsRepository = (*fakeStatsRepo)(nil)

// recordingPublisher counts fan-out events so tests can assert publishing
// without a running hub.
type recordingPublisher struct {
	matches int
	stats   int
}

func (p *recordingPublisher) PublishMatch(model.Match)       { p.matches++ }
func (p *recordingPublisher) PublishStats(model.PlayerStats) { p.stats++ }

func newMatchService(t *testing.T) (service.MatchService, *fakeMatchRepo, *fakeTeamRepo, *fakeStatsRepo, *recordingPublisher) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	matches := newFakeMatchRepo()
	teams := &fakeTeamRepo{exist: map[primitive.ObjectID]bool{}}
	stats := newFakeStatsRepo()
	pub := &recordingPublisher{}
	return service.NewMatchService(matches, teams, stats, pub, logger), matches, teams, stats, pub
}

func seedMatch(t *testing.T, svc service.MatchService, teams *fakeTeamRepo) model.Match {
	t.Helper()
	teamID := primitive.NewObjectID()
	teams.exist[teamID] = true
	m, err := svc.CreateMatch(context.Background(), service.CreateMatchInput{
		TeamID:   teamID.Hex(),
		UserID:   primitive.NewObjectID().Hex(),
		Opponent: service.OpponentInput{Name: "CB Rivals", Category: "senior"},
		Date:     time.Now(),
		Location: "Pavelló Nord",
		StartingPlayers: []string{
			primitive.NewObjectID().Hex(),
			primitive.NewObjectID().Hex(),
		},
	})
	if err != nil {
		t.Fatalf("seed match: %v", err)
	}
	return m
}

func TestCreateMatch_BootstrapsStats(t *testing.T) {
	svc, _, teams, stats, _ := newMatchService(t)
	m := seedMatch(t, svc, teams)

	if m.Status != model.MatchStatusInProgress {
		t.Fatalf("expected in_progress, got %s", m.Status)
	}
	if len(m.PeriodsHistory) != 0 {
		t.Fatalf("expected empty history")
	}
	if m.TeamAScore != 0 || m.TeamBScore != 0 {
		t.Fatalf("expected zero totals")
	}
	docs, _ := stats.ListByMatch(context.Background(), m.ID)
	// two starters + synthetic opponent
	if len(docs) != 3 {
		t.Fatalf("expected 3 stats docs, got %d", len(docs))
	}
	if m.OpponentTeam.PlayerStatsID.IsZero() {
		t.Fatalf("expected opponent stats link on match")
	}
	opp, err := stats.GetByID(context.Background(), m.OpponentTeam.PlayerStatsID)
	if err != nil || opp.PlayerID != model.OpponentStatsID {
		t.Fatalf("opponent stats doc not linked correctly: %v %+v", err, opp)
	}
}

func TestCreateMatch_TeamMissing(t *testing.T) {
	svc, _, _, _, _ := newMatchService(t)
	_, err := svc.CreateMatch(context.Background(), service.CreateMatchInput{
		TeamID:   primitive.NewObjectID().Hex(),
		UserID:   primitive.NewObjectID().Hex(),
		Opponent: service.OpponentInput{Name: "CB Rivals"},
		Date:     time.Now(),
	})
	if !serviceErrIsInvalid(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if !hasField(err, "team_id") {
		t.Fatalf("expected team_id field error")
	}
}

func TestRecordPeriod_AppendsThenReplaces(t *testing.T) {
	svc, matches, teams, _, pub := newMatchService(t)
	m := seedMatch(t, svc, teams)
	baseline := matches.replaces

	// Scenario: first period closes 20-18 with 3-2 fouls.
	out, err := svc.RecordPeriod(context.Background(), m.ID.Hex(), service.RecordPeriodInput{
		Period: "H1", TeamAScore: 20, TeamBScore: 18, TeamAFouls: 3, TeamBFouls: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.PeriodsHistory) != 1 || out.TeamAScore != 20 || out.TeamBScore != 18 {
		t.Fatalf("unexpected state after H1: %+v", out)
	}

	// Correcting H1 replaces the record instead of appending.
	out, err = svc.RecordPeriod(context.Background(), m.ID.Hex(), service.RecordPeriodInput{
		Period: "H1", TeamAScore: 25, TeamBScore: 18, TeamAFouls: 4, TeamBFouls: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.PeriodsHistory) != 1 {
		t.Fatalf("expected replace-in-place, got %d records", len(out.PeriodsHistory))
	}
	if out.PeriodsHistory[0].TeamAScore != 25 || out.PeriodsHistory[0].TeamAFouls != 4 {
		t.Fatalf("H1 record not replaced: %+v", out.PeriodsHistory[0])
	}
	if out.TeamAScore != 25 {
		t.Fatalf("running total not mirrored, got %d", out.TeamAScore)
	}

	// H2 appends after H1.
	out, err = svc.RecordPeriod(context.Background(), m.ID.Hex(), service.RecordPeriodInput{
		Period: "H2", TeamAScore: 42, TeamBScore: 40, TeamAFouls: 5, TeamBFouls: 4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.PeriodsHistory) != 2 ||
		out.PeriodsHistory[0].Period != model.PeriodH1 ||
		out.PeriodsHistory[1].Period != model.PeriodH2 {
		t.Fatalf("unexpected history order: %+v", out.PeriodsHistory)
	}
	if out.TeamAScore != 42 || out.TeamBScore != 40 {
		t.Fatalf("running totals not mirrored: %+v", out)
	}
	if matches.replaces-baseline != 3 {
		t.Fatalf("expected one whole-document write per call, got %d", matches.replaces-baseline)
	}
	if pub.matches != 3 {
		t.Fatalf("expected 3 published match updates, got %d", pub.matches)
	}
}

func TestRecordPeriod_NotFoundWritesNothing(t *testing.T) {
	svc, matches, _, _, _ := newMatchService(t)
	_, err := svc.RecordPeriod(context.Background(), primitive.NewObjectID().Hex(), service.RecordPeriodInput{
		Period: "H1", TeamAScore: 10, TeamBScore: 8,
	})
	if err == nil || !errorsIsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if matches.replaces != 0 {
		t.Fatalf("expected no persistence write, got %d", matches.replaces)
	}
}

func TestRecordPeriod_Validation(t *testing.T) {
	svc, _, teams, _, _ := newMatchService(t)
	m := seedMatch(t, svc, teams)

	cases := []struct {
		name  string
		id    string
		in    service.RecordPeriodInput
		field string
	}{
		{"bad id", "nope", service.RecordPeriodInput{Period: "H1"}, "id"},
		{"bad period", m.ID.Hex(), service.RecordPeriodInput{Period: "halftime"}, "period"},
		{"negative score", m.ID.Hex(), service.RecordPeriodInput{Period: "H1", TeamAScore: -1}, "score"},
		{"negative fouls", m.ID.Hex(), service.RecordPeriodInput{Period: "H1", TeamBFouls: -2}, "fouls"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordPeriod(context.Background(), tc.id, tc.in)
			if !serviceErrIsInvalid(err) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			if !hasField(err, tc.field) {
				t.Fatalf("expected field %s in %v", tc.field, service.FieldErrors(err))
			}
		})
	}
}

func TestGetPeriodHistory_EmptyVsMissing(t *testing.T) {
	svc, _, teams, _, _ := newMatchService(t)
	m := seedMatch(t, svc, teams)

	history, err := svc.GetPeriodHistory(context.Background(), m.ID.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Fatalf("expected empty slice, got %#v", history)
	}

	_, err = svc.GetPeriodHistory(context.Background(), primitive.NewObjectID().Hex())
	if !errorsIsNotFound(err) {
		t.Fatalf("expected not found for missing match, got %v", err)
	}
}

func TestGetPeriodDeltas(t *testing.T) {
	svc, _, teams, _, _ := newMatchService(t)
	m := seedMatch(t, svc, teams)

	for _, in := range []service.RecordPeriodInput{
		{Period: "H1", TeamAScore: 25, TeamBScore: 18, TeamAFouls: 4, TeamBFouls: 2},
		{Period: "H2", TeamAScore: 42, TeamBScore: 40, TeamAFouls: 5, TeamBFouls: 4},
	} {
		if _, err := svc.RecordPeriod(context.Background(), m.ID.Hex(), in); err != nil {
			t.Fatalf("record period: %v", err)
		}
	}

	deltas, err := svc.GetPeriodDeltas(context.Background(), m.ID.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deltas) != 2 {
		t.Fatalf("expected 2 deltas, got %d", len(deltas))
	}
	if deltas[0].TeamAScore != 25 || deltas[0].TeamBScore != 18 {
		t.Fatalf("first delta must equal cumulative values: %+v", deltas[0])
	}
	if deltas[1].TeamAScore != 17 || deltas[1].TeamBScore != 22 {
		t.Fatalf("unexpected H2 delta: %+v", deltas[1])
	}
}

func TestUpdateMatch_StatusOneWay(t *testing.T) {
	svc, _, teams, _, _ := newMatchService(t)
	m := seedMatch(t, svc, teams)

	completed := model.MatchStatusCompleted
	out, err := svc.UpdateMatch(context.Background(), m.ID.Hex(), service.MatchPatch{Status: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != model.MatchStatusCompleted {
		t.Fatalf("expected completed, got %s", out.Status)
	}

	reopen := model.MatchStatusInProgress
	_, err = svc.UpdateMatch(context.Background(), m.ID.Hex(), service.MatchPatch{Status: &reopen})
	if !serviceErrIsInvalid(err) || !hasField(err, "status") {
		t.Fatalf("expected status field error, got %v", err)
	}
}

func TestUpdateMatch_DoesNotTouchHistory(t *testing.T) {
	svc, _, teams, _, _ := newMatchService(t)
	m := seedMatch(t, svc, teams)

	if _, err := svc.RecordPeriod(context.Background(), m.ID.Hex(), service.RecordPeriodInput{
		Period: "H1", TeamAScore: 12, TeamBScore: 9, TeamAFouls: 1, TeamBFouls: 1,
	}); err != nil {
		t.Fatalf("record period: %v", err)
	}

	loc := "Pavelló Sud"
	period := "H2"
	out, err := svc.UpdateMatch(context.Background(), m.ID.Hex(), service.MatchPatch{Location: &loc, CurrentPeriod: &period})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Location != loc || out.CurrentPeriod != model.PeriodH2 {
		t.Fatalf("patch not applied: %+v", out)
	}
	if len(out.PeriodsHistory) != 1 || out.TeamAScore != 12 {
		t.Fatalf("patch must not disturb ledger state: %+v", out)
	}
}

// helpers shared across service tests

func serviceErrIsInvalid(err error) bool {
	return err != nil && len(service.FieldErrors(err)) > 0
}

func hasField(err error, field string) bool {
	for _, fe := range service.FieldErrors(err) {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
