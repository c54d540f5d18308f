package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxviazov/basketball-team-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UserRepository declares persistence operations for users.
// I return domain models and surface domain errors from errors.go rather than driver errors.
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (model.User, error)
	Update(ctx context.Context, u model.User) (model.User, error)
}

// TeamRepository declares persistence operations for teams.
type TeamRepository interface {
	Create(ctx context.Context, t model.Team) (model.Team, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (model.Team, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, p Page) (PageResult[model.Team], error)
	Update(ctx context.Context, t model.Team) (model.Team, error)
}

// PlayerRepository declares persistence operations for players.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (model.Player, error)
	ListByTeam(ctx context.Context, teamID primitive.ObjectID, p Page) (PageResult[model.Player], error)
	Update(ctx context.Context, p model.Player) (model.Player, error)
}

// MatchRepository declares persistence operations for matches.
//
// Replace is deliberately the only write path for an existing match: the
// ledger's contract is one whole-document replace per recorded period, never
// a field-level update. Partial patches go through the service, which fetches,
// mutates and replaces under the same single-writer-per-match assumption.
type MatchRepository interface {
	Create(ctx context.Context, m model.Match) (model.Match, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (model.Match, error)
	Replace(ctx context.Context, m model.Match) (model.Match, error)
	ListByTeam(ctx context.Context, teamID primitive.ObjectID, p Page) (PageResult[model.Match], error)
}

// StatsRepository declares operations for per-player match stat documents.
// Increment must be a single-document atomic update; there is no merge logic.
type StatsRepository interface {
	InsertMany(ctx context.Context, docs []model.PlayerStats) ([]model.PlayerStats, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (model.PlayerStats, error)
	Increment(ctx context.Context, id primitive.ObjectID, deltas model.StatDeltas) (model.PlayerStats, error)
	ListByMatch(ctx context.Context, matchID primitive.ObjectID) ([]model.PlayerStats, error)
}
