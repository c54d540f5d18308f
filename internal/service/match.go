package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
)

// matchService owns the match lifecycle and the period ledger.
//
// The ledger assumes a single scorekeeper per match: RecordPeriod is a plain
// fetch, mutate, whole-document replace with no revision check. Two
// concurrent scorers would overwrite each other; that trade-off is
// intentional and documented rather than papered over with locking.
type matchService struct {
	matches repository.MatchRepository
	teams   repository.TeamRepository
	stats   repository.StatsRepository
	pub     Publisher
	log     zerolog.Logger
}

func NewMatchService(matches repository.MatchRepository, teams repository.TeamRepository, stats repository.StatsRepository, pub Publisher, logger zerolog.Logger) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	if pub == nil {
		pub = NopPublisher{}
	}
	return &matchService{matches: matches, teams: teams, stats: stats, pub: pub, log: l}
}

func (s *matchService) CreateMatch(ctx context.Context, in CreateMatchInput) (model.Match, error) {
	start := time.Now()

	var ferrs []FieldError
	teamID, ferr := parseObjectID("team_id", in.TeamID)
	if ferr != nil {
		ferrs = append(ferrs, *ferr)
	}
	userID, ferr := parseObjectID("user_id", in.UserID)
	if ferr != nil {
		ferrs = append(ferrs, *ferr)
	}
	starting, ferr := parseObjectIDs("starting_players", in.StartingPlayers)
	if ferr != nil {
		ferrs = append(ferrs, *ferr)
	}
	opponentName := strings.TrimSpace(in.Opponent.Name)
	if opponentName == "" {
		ferrs = append(ferrs, FieldError{Field: "opponent_team.name", Message: "must not be empty"})
	}
	if in.Date.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "must be set"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("match validation failed (structure)")
		return model.Match{}, err
	}

	// Existence check before persistence, same as game creation upstream.
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Match{}, NewInvalidInputError([]FieldError{{Field: "team_id", Message: "team does not exist"}})
		}
		return model.Match{}, err
	}

	match := model.Match{
		TeamID: teamID,
		UserID: userID,
		OpponentTeam: model.OpponentTeam{
			Name:     opponentName,
			Category: strings.TrimSpace(in.Opponent.Category),
			Photo:    in.Opponent.Photo,
		},
		Date:            in.Date,
		Location:        strings.TrimSpace(in.Location),
		StartingPlayers: starting,
		CurrentPeriod:   model.PeriodH1,
		PeriodsHistory:  []model.PeriodRecord{},
		Status:          model.MatchStatusInProgress,
	}

	created, err := s.matches.Create(ctx, match)
	if err != nil {
		s.log.Error().Err(err).Str("team_id", teamID.Hex()).Msg("create match failed")
		return model.Match{}, err
	}

	// Bootstrap the stat counters: one zeroed document per starting player
	// plus the synthetic opponent document, linked back onto the match.
	docs, err := s.stats.InsertMany(ctx, statsDocsForMatch(created.ID, in.StartingPlayers))
	if err != nil {
		s.log.Error().Err(err).Str("match_id", created.ID.Hex()).Msg("initialize match stats failed")
		return model.Match{}, err
	}
	created.OpponentTeam.PlayerStatsID = docs[len(docs)-1].ID
	created, err = s.matches.Replace(ctx, created)
	if err != nil {
		return model.Match{}, err
	}

	s.log.Info().
		Dur("took", time.Since(start)).
		Str("match_id", created.ID.Hex()).
		Int("stats_docs", len(docs)).
		Msg("match created")
	return created, nil
}

func (s *matchService) GetMatch(ctx context.Context, id string) (model.Match, error) {
	oid, ferr := parseObjectID("id", id)
	if ferr != nil {
		return model.Match{}, NewInvalidInputError([]FieldError{*ferr})
	}
	return s.matches.GetByID(ctx, oid)
}

func (s *matchService) ListMatchesByTeam(ctx context.Context, teamID string, page repository.Page) (repository.PageResult[model.Match], error) {
	oid, ferr := parseObjectID("team_id", teamID)
	if ferr != nil {
		return repository.PageResult[model.Match]{}, NewInvalidInputError([]FieldError{*ferr})
	}
	p := normalizePage(page)
	res, err := s.matches.ListByTeam(ctx, oid, p)
	if err != nil {
		s.log.Error().Err(err).Str("team_id", oid.Hex()).Msg("list matches failed")
		return repository.PageResult[model.Match]{}, err
	}
	return res, nil
}

// RecordPeriod upserts one cumulative period snapshot into the match ledger.
//
// The fetch happens before any mutation, so a missing match produces
// ErrNotFound with no write. On success the history holds exactly one record
// for the label and the running totals equal that record's fields; the whole
// document is persisted in a single replace.
func (s *matchService) RecordPeriod(ctx context.Context, matchID string, in RecordPeriodInput) (model.Match, error) {
	var ferrs []FieldError
	oid, ferr := parseObjectID("id", matchID)
	if ferr != nil {
		ferrs = append(ferrs, *ferr)
	}
	period, err := model.ParsePeriod(in.Period)
	if err != nil {
		ferrs = append(ferrs, FieldError{Field: "period", Message: "must be one of H1..H4, OT, OTn"})
	}
	if in.TeamAScore < 0 || in.TeamBScore < 0 {
		ferrs = append(ferrs, FieldError{Field: "score", Message: "must be >= 0"})
	}
	if in.TeamAFouls < 0 || in.TeamBFouls < 0 {
		ferrs = append(ferrs, FieldError{Field: "fouls", Message: "must be >= 0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Str("period_raw", in.Period).Interface("field_errors", ferrs).Msg("period validation failed")
		return model.Match{}, err
	}

	match, err := s.matches.GetByID(ctx, oid)
	if err != nil {
		return model.Match{}, err
	}

	match.RecordPeriod(model.PeriodRecord{
		Period:     period,
		TeamAScore: in.TeamAScore,
		TeamBScore: in.TeamBScore,
		TeamAFouls: in.TeamAFouls,
		TeamBFouls: in.TeamBFouls,
	})

	updated, err := s.matches.Replace(ctx, match)
	if err != nil {
		s.log.Error().Err(err).Str("match_id", oid.Hex()).Str("period", string(period)).Msg("record period failed")
		return model.Match{}, err
	}

	s.pub.PublishMatch(updated)
	s.log.Info().
		Str("match_id", oid.Hex()).
		Str("period", string(period)).
		Int("team_a_score", updated.TeamAScore).
		Int("team_b_score", updated.TeamBScore).
		Msg("period recorded")
	return updated, nil
}

func (s *matchService) GetPeriodHistory(ctx context.Context, matchID string) ([]model.PeriodRecord, error) {
	oid, ferr := parseObjectID("id", matchID)
	if ferr != nil {
		return nil, NewInvalidInputError([]FieldError{*ferr})
	}
	match, err := s.matches.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	// Empty history is a valid answer, distinct from the not-found case above.
	if match.PeriodsHistory == nil {
		return []model.PeriodRecord{}, nil
	}
	return match.PeriodsHistory, nil
}

func (s *matchService) GetPeriodDeltas(ctx context.Context, matchID string) ([]model.PeriodDelta, error) {
	history, err := s.GetPeriodHistory(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return model.PeriodDeltas(history), nil
}

// UpdateMatch applies a partial update to the mutable match fields. The
// period history is not among them; see MatchPatch.
func (s *matchService) UpdateMatch(ctx context.Context, matchID string, patch MatchPatch) (model.Match, error) {
	oid, ferr := parseObjectID("id", matchID)
	if ferr != nil {
		return model.Match{}, NewInvalidInputError([]FieldError{*ferr})
	}

	match, err := s.matches.GetByID(ctx, oid)
	if err != nil {
		return model.Match{}, err
	}

	var ferrs []FieldError
	if patch.Date != nil {
		if patch.Date.IsZero() {
			ferrs = append(ferrs, FieldError{Field: "date", Message: "must be set"})
		} else {
			match.Date = *patch.Date
		}
	}
	if patch.Location != nil {
		match.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.CurrentPeriod != nil {
		period, err := model.ParsePeriod(*patch.CurrentPeriod)
		if err != nil {
			ferrs = append(ferrs, FieldError{Field: "current_period", Message: "must be one of H1..H4, OT, OTn"})
		} else {
			match.CurrentPeriod = period
		}
	}
	if patch.StartingPlayers != nil {
		starting, ferr := parseObjectIDs("starting_players", *patch.StartingPlayers)
		if ferr != nil {
			ferrs = append(ferrs, *ferr)
		} else {
			match.StartingPlayers = starting
		}
	}
	if patch.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*patch.Status))
		switch {
		case !isValidMatchStatus(status):
			ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of in_progress|completed"})
		case match.Status == model.MatchStatusCompleted && status == model.MatchStatusInProgress:
			// Completion is one-way.
			ferrs = append(ferrs, FieldError{Field: "status", Message: "completed match cannot be reopened"})
		default:
			match.Status = status
		}
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Str("match_id", oid.Hex()).Interface("field_errors", ferrs).Msg("match patch validation failed")
		return model.Match{}, err
	}

	updated, err := s.matches.Replace(ctx, match)
	if err != nil {
		s.log.Error().Err(err).Str("match_id", oid.Hex()).Msg("update match failed")
		return model.Match{}, err
	}
	s.pub.PublishMatch(updated)
	return updated, nil
}
