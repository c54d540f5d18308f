package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/service"
)

func newStatsService(t *testing.T) (service.StatsService, *fakeStatsRepo, *fakeMatchRepo, *recordingPublisher) {
	t.Helper()
	stats := newFakeStatsRepo()
	matches := newFakeMatchRepo()
	pub := &recordingPublisher{}
	return service.NewStatsService(stats, matches, pub, zerolog.New(io.Discard)), stats, matches, pub
}

func TestInitializeStats(t *testing.T) {
	svc, stats, matches, _ := newStatsService(t)
	m, _ := matches.Create(context.Background(), model.Match{})

	docs, err := svc.InitializeStats(context.Background(), m.ID.Hex(), []string{
		primitive.NewObjectID().Hex(),
		primitive.NewObjectID().Hex(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 2 player docs plus opponent, got %d", len(docs))
	}
	if docs[len(docs)-1].PlayerID != model.OpponentStatsID {
		t.Fatalf("opponent document must come last: %+v", docs)
	}
	for _, d := range docs {
		if d.Points != 0 || d.Fouls != 0 {
			t.Fatalf("counters must start at zero: %+v", d)
		}
	}
	all, _ := stats.ListByMatch(context.Background(), m.ID)
	if len(all) != 3 {
		t.Fatalf("expected 3 persisted docs, got %d", len(all))
	}
}

func TestInitializeStats_Rejections(t *testing.T) {
	svc, _, matches, _ := newStatsService(t)
	m, _ := matches.Create(context.Background(), model.Match{})

	cases := []struct {
		name    string
		matchID string
		players []string
		field   string
	}{
		{"bad match id", "xyz", nil, "match_id"},
		{"missing match", primitive.NewObjectID().Hex(), nil, "match_id"},
		{"reserved player id", m.ID.Hex(), []string{model.OpponentStatsID}, "player_ids"},
		{"empty player id", m.ID.Hex(), []string{" "}, "player_ids"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.InitializeStats(context.Background(), tc.matchID, tc.players)
			if !serviceErrIsInvalid(err) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			if !hasField(err, tc.field) {
				t.Fatalf("expected field %s in %v", tc.field, service.FieldErrors(err))
			}
		})
	}
}

func TestIncrementStats(t *testing.T) {
	svc, stats, matches, pub := newStatsService(t)
	m, _ := matches.Create(context.Background(), model.Match{})
	docs, _ := stats.InsertMany(context.Background(), []model.PlayerStats{
		{MatchID: m.ID, PlayerID: primitive.NewObjectID().Hex()},
	})
	id := docs[0].ID

	out, err := svc.IncrementStats(context.Background(), id.Hex(), model.StatDeltas{Points: 2, Rebounds: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Points != 2 || out.Rebounds != 1 {
		t.Fatalf("counters not incremented: %+v", out)
	}

	// Deltas add onto the stored value, they never overwrite it.
	out, err = svc.IncrementStats(context.Background(), id.Hex(), model.StatDeltas{Points: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Points != 5 || out.Rebounds != 1 {
		t.Fatalf("expected cumulative counters, got %+v", out)
	}
	if pub.stats != 2 {
		t.Fatalf("expected 2 published stats updates, got %d", pub.stats)
	}
}

func TestIncrementStats_Rejections(t *testing.T) {
	svc, stats, matches, _ := newStatsService(t)
	m, _ := matches.Create(context.Background(), model.Match{})
	docs, _ := stats.InsertMany(context.Background(), []model.PlayerStats{
		{MatchID: m.ID, PlayerID: primitive.NewObjectID().Hex()},
	})
	id := docs[0].ID.Hex()

	if _, err := svc.IncrementStats(context.Background(), id, model.StatDeltas{}); !hasField(err, "deltas") {
		t.Fatalf("expected empty-delta rejection, got %v", err)
	}
	if _, err := svc.IncrementStats(context.Background(), id, model.StatDeltas{Fouls: -1}); !hasField(err, "fouls") {
		t.Fatalf("expected negative-delta rejection, got %v", err)
	}
	_, err := svc.IncrementStats(context.Background(), primitive.NewObjectID().Hex(), model.StatDeltas{Points: 2})
	if !errorsIsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetStats_BadID(t *testing.T) {
	svc, _, _, _ := newStatsService(t)
	_, err := svc.GetStats(context.Background(), "short")
	if !serviceErrIsInvalid(err) || !hasField(err, "id") {
		t.Fatalf("expected id field error, got %v", err)
	}
}
