package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
)

type statsService struct {
	stats   repository.StatsRepository
	matches repository.MatchRepository
	pub     Publisher
	log     zerolog.Logger
}

func NewStatsService(stats repository.StatsRepository, matches repository.MatchRepository, pub Publisher, logger zerolog.Logger) StatsService {
	l := logger.With().Str("module", "service").Str("component", "stats").Logger()
	if pub == nil {
		pub = NopPublisher{}
	}
	return &statsService{stats: stats, matches: matches, pub: pub, log: l}
}

// InitializeStats creates the zeroed counter documents for a match. Normally
// CreateMatch does this; the standalone operation covers matches imported
// from elsewhere or repaired by hand.
func (s *statsService) InitializeStats(ctx context.Context, matchID string, playerIDs []string) ([]model.PlayerStats, error) {
	var ferrs []FieldError
	oid, ferr := parseObjectID("match_id", matchID)
	if ferr != nil {
		ferrs = append(ferrs, *ferr)
	}
	for _, pid := range playerIDs {
		if strings.TrimSpace(pid) == "" {
			ferrs = append(ferrs, FieldError{Field: "player_ids", Message: "must not contain empty ids"})
			break
		}
		if pid == model.OpponentStatsID {
			ferrs = append(ferrs, FieldError{Field: "player_ids", Message: fmt.Sprintf("%q is reserved", model.OpponentStatsID)})
			break
		}
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return nil, err
	}

	// The match must exist before counters are attached to it.
	if _, err := s.matches.GetByID(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewInvalidInputError([]FieldError{{Field: "match_id", Message: "match does not exist"}})
		}
		return nil, err
	}

	docs, err := s.stats.InsertMany(ctx, statsDocsForMatch(oid, playerIDs))
	if err != nil {
		s.log.Error().Err(err).Str("match_id", oid.Hex()).Msg("initialize stats failed")
		return nil, err
	}
	s.log.Info().Str("match_id", oid.Hex()).Int("docs", len(docs)).Msg("stats initialized")
	return docs, nil
}

func (s *statsService) GetStats(ctx context.Context, id string) (model.PlayerStats, error) {
	oid, ferr := parseObjectID("id", id)
	if ferr != nil {
		return model.PlayerStats{}, NewInvalidInputError([]FieldError{*ferr})
	}
	return s.stats.GetByID(ctx, oid)
}

// IncrementStats applies a partial delta to one counter document. The update
// is a single atomic $inc in the store; there is nothing to merge or recompute.
func (s *statsService) IncrementStats(ctx context.Context, id string, deltas model.StatDeltas) (model.PlayerStats, error) {
	var ferrs []FieldError
	oid, ferr := parseObjectID("id", id)
	if ferr != nil {
		ferrs = append(ferrs, *ferr)
	}
	for _, field := range deltas.Negative() {
		ferrs = append(ferrs, FieldError{Field: field, Message: "must be >= 0"})
	}
	if len(deltas.Fields()) == 0 {
		ferrs = append(ferrs, FieldError{Field: "deltas", Message: "at least one counter must be set"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.PlayerStats{}, err
	}

	out, err := s.stats.Increment(ctx, oid, deltas)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("stats_id", oid.Hex()).Msg("increment stats failed")
		}
		return model.PlayerStats{}, err
	}
	s.pub.PublishStats(out)
	return out, nil
}

func (s *statsService) ListStatsByMatch(ctx context.Context, matchID string) ([]model.PlayerStats, error) {
	oid, ferr := parseObjectID("match_id", matchID)
	if ferr != nil {
		return nil, NewInvalidInputError([]FieldError{*ferr})
	}
	return s.stats.ListByMatch(ctx, oid)
}
