// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// UserService defines user-profile use cases. Authentication lives outside
// this service; only profile data is managed here.
type UserService interface {
	CreateUser(ctx context.Context, name, email string) (model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (model.User, error)
}

// TeamService defines team-oriented use cases.
type TeamService interface {
	CreateTeam(ctx context.Context, userID, name, category, photo string) (model.Team, error)
	GetTeam(ctx context.Context, id string) (model.Team, error)
	ListTeamsByUser(ctx context.Context, userID string, page repository.Page) (repository.PageResult[model.Team], error)
	UpdateTeam(ctx context.Context, id string, patch TeamPatch) (model.Team, error)
}

// PlayerService defines player-oriented use cases.
type PlayerService interface {
	CreatePlayer(ctx context.Context, teamID, name string, number int, position, photo string) (model.Player, error)
	GetPlayer(ctx context.Context, id string) (model.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID string, page repository.Page) (repository.PageResult[model.Player], error)
	UpdatePlayer(ctx context.Context, id string, patch PlayerPatch) (model.Player, error)
}

// MatchService defines match use cases, including the period ledger.
// RecordPeriod and the general patch are distinct on purpose: the patch never
// touches the period history, so merge-or-append is the only write path for it.
type MatchService interface {
	CreateMatch(ctx context.Context, in CreateMatchInput) (model.Match, error)
	GetMatch(ctx context.Context, id string) (model.Match, error)
	ListMatchesByTeam(ctx context.Context, teamID string, page repository.Page) (repository.PageResult[model.Match], error)
	RecordPeriod(ctx context.Context, matchID string, in RecordPeriodInput) (model.Match, error)
	GetPeriodHistory(ctx context.Context, matchID string) ([]model.PeriodRecord, error)
	GetPeriodDeltas(ctx context.Context, matchID string) ([]model.PeriodDelta, error)
	UpdateMatch(ctx context.Context, matchID string, patch MatchPatch) (model.Match, error)
}

// StatsService defines the per-player counter use cases. Counters are
// initialized once per match and then only ever incremented.
type StatsService interface {
	InitializeStats(ctx context.Context, matchID string, playerIDs []string) ([]model.PlayerStats, error)
	GetStats(ctx context.Context, id string) (model.PlayerStats, error)
	IncrementStats(ctx context.Context, id string, deltas model.StatDeltas) (model.PlayerStats, error)
	ListStatsByMatch(ctx context.Context, matchID string) ([]model.PlayerStats, error)
}

// Publisher receives updated snapshots after successful writes so live
// consumers (the websocket hub) can fan them out. Implementations must not
// block; a no-op publisher is fine for tests and batch tools.
type Publisher interface {
	PublishMatch(m model.Match)
	PublishStats(s model.PlayerStats)
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) PublishMatch(model.Match)       {}
func (NopPublisher) PublishStats(model.PlayerStats) {}

// UserPatch carries optional user profile changes; nil fields stay untouched.
type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// TeamPatch carries optional team changes.
type TeamPatch struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Photo    *string `json:"photo,omitempty"`
}

// PlayerPatch carries optional player changes.
type PlayerPatch struct {
	Name     *string `json:"name,omitempty"`
	Number   *int    `json:"number,omitempty"`
	Position *string `json:"position,omitempty"`
	Photo    *string `json:"photo,omitempty"`
}

// OpponentInput describes the virtual opposing team captured at match start.
type OpponentInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Photo    string `json:"photo,omitempty"`
}

// CreateMatchInput is everything needed to start a match.
type CreateMatchInput struct {
	TeamID          string        `json:"team_id"`
	UserID          string        `json:"user_id"`
	Opponent        OpponentInput `json:"opponent_team"`
	Date            time.Time     `json:"date"`
	Location        string        `json:"location"`
	StartingPlayers []string      `json:"starting_players"`
}

// RecordPeriodInput is one cumulative period snapshot as sent by the scorer.
// The label is validated and normalized against the closed period set.
type RecordPeriodInput struct {
	Period     string `json:"period"`
	TeamAScore int    `json:"team_a_score"`
	TeamBScore int    `json:"team_b_score"`
	TeamAFouls int    `json:"team_a_fouls"`
	TeamBFouls int    `json:"team_b_fouls"`
}

// MatchPatch carries the mutable match fields. PeriodsHistory is absent by
// design: history changes only through RecordPeriod.
type MatchPatch struct {
	Date            *time.Time `json:"date,omitempty"`
	Location        *string    `json:"location,omitempty"`
	CurrentPeriod   *string    `json:"current_period,omitempty"`
	StartingPlayers *[]string  `json:"starting_players,omitempty"`
	Status          *string    `json:"status,omitempty"`
}

// statsDocsForMatch builds the zeroed stat documents for a match: one per
// player plus the synthetic opponent document (always last).
func statsDocsForMatch(matchID primitive.ObjectID, playerIDs []string) []model.PlayerStats {
	docs := make([]model.PlayerStats, 0, len(playerIDs)+1)
	for _, pid := range playerIDs {
		docs = append(docs, model.PlayerStats{MatchID: matchID, PlayerID: pid})
	}
	docs = append(docs, model.PlayerStats{MatchID: matchID, PlayerID: model.OpponentStatsID})
	return docs
}
