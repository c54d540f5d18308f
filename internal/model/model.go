// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes; the only behavior here is the
// period ledger logic in period.go, which is pure and store-agnostic.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account that owns teams and matches.
// Credentials and auth are handled outside this service; this is profile data only.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Team represents a basketball team managed by a user.
type Team struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Name      string             `json:"name" bson:"name"`
	Category  string             `json:"category" bson:"category"`
	Photo     string             `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Player represents an athlete belonging to a team.
type Player struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TeamID    primitive.ObjectID `json:"team_id" bson:"team_id"`
	Name      string             `json:"name" bson:"name"`
	Number    int                `json:"number" bson:"number"`
	Position  string             `json:"position" bson:"position"`
	Photo     string             `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Match statuses. A match is created in progress and completed exactly once;
// there is no reverse transition.
const (
	MatchStatusInProgress = "in_progress"
	MatchStatusCompleted  = "completed"
)

// OpponentTeam is the lightweight virtual team embedded in a match.
// It is created at match-start time and never promoted to a full Team entity.
// PlayerStatsID links the synthetic "opponent" stats document for the match.
type OpponentTeam struct {
	Name          string             `json:"name" bson:"name"`
	Category      string             `json:"category" bson:"category"`
	Photo         string             `json:"photo,omitempty" bson:"photo,omitempty"`
	PlayerStatsID primitive.ObjectID `json:"player_stats_id" bson:"player_stats_id"`
}

// Match represents one game instance. TeamID and UserID are immutable after
// creation. The four running-total fields always mirror the most recently
// recorded entry of PeriodsHistory; RecordPeriod in period.go is the only
// writer once the match exists.
type Match struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	TeamID          primitive.ObjectID   `json:"team_id" bson:"team_id"`
	UserID          primitive.ObjectID   `json:"user_id" bson:"user_id"`
	OpponentTeam    OpponentTeam         `json:"opponent_team" bson:"opponent_team"`
	Date            time.Time            `json:"date" bson:"date"`
	Location        string               `json:"location" bson:"location"`
	StartingPlayers []primitive.ObjectID `json:"starting_players" bson:"starting_players"`
	TeamAScore      int                  `json:"team_a_score" bson:"team_a_score"`
	TeamBScore      int                  `json:"team_b_score" bson:"team_b_score"`
	TeamAFouls      int                  `json:"team_a_fouls" bson:"team_a_fouls"`
	TeamBFouls      int                  `json:"team_b_fouls" bson:"team_b_fouls"`
	CurrentPeriod   Period               `json:"current_period" bson:"current_period"`
	PeriodsHistory  []PeriodRecord       `json:"periods_history" bson:"periods_history"`
	Status          string               `json:"status" bson:"status"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
}

// OpponentStatsID is the synthetic player id used for the single stats
// document that aggregates the opposing team for a match.
const OpponentStatsID = "opponent"

// PlayerStats holds the per-player counters for one match. One document per
// (match, player) pair, plus exactly one with PlayerID == OpponentStatsID.
// Counters default to zero and are only ever incremented, never recomputed.
type PlayerStats struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MatchID              primitive.ObjectID `json:"match_id" bson:"match_id"`
	PlayerID             string             `json:"player_id" bson:"player_id"`
	Points               int                `json:"points" bson:"points"`
	TwoPointsMade        int                `json:"two_points_made" bson:"two_points_made"`
	TwoPointsAttempted   int                `json:"two_points_attempted" bson:"two_points_attempted"`
	ThreePointsMade      int                `json:"three_points_made" bson:"three_points_made"`
	ThreePointsAttempted int                `json:"three_points_attempted" bson:"three_points_attempted"`
	FreeThrowsMade       int                `json:"free_throws_made" bson:"free_throws_made"`
	FreeThrowsAttempted  int                `json:"free_throws_attempted" bson:"free_throws_attempted"`
	Rebounds             int                `json:"rebounds" bson:"rebounds"`
	Assists              int                `json:"assists" bson:"assists"`
	Steals               int                `json:"steals" bson:"steals"`
	Blocks               int                `json:"blocks" bson:"blocks"`
	Turnovers            int                `json:"turnovers" bson:"turnovers"`
	Fouls                int                `json:"fouls" bson:"fouls"`
	MinutesPlayed        int                `json:"minutes_played" bson:"minutes_played"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" bson:"updated_at"`
}

// StatDeltas carries increments for a subset of the PlayerStats counters.
// Zero fields are skipped when the update document is built, so a partial
// delta touches only the counters it names.
type StatDeltas struct {
	Points               int `json:"points,omitempty"`
	TwoPointsMade        int `json:"two_points_made,omitempty"`
	TwoPointsAttempted   int `json:"two_points_attempted,omitempty"`
	ThreePointsMade      int `json:"three_points_made,omitempty"`
	ThreePointsAttempted int `json:"three_points_attempted,omitempty"`
	FreeThrowsMade       int `json:"free_throws_made,omitempty"`
	FreeThrowsAttempted  int `json:"free_throws_attempted,omitempty"`
	Rebounds             int `json:"rebounds,omitempty"`
	Assists              int `json:"assists,omitempty"`
	Steals               int `json:"steals,omitempty"`
	Blocks               int `json:"blocks,omitempty"`
	Turnovers            int `json:"turnovers,omitempty"`
	Fouls                int `json:"fouls,omitempty"`
	MinutesPlayed        int `json:"minutes_played,omitempty"`
}

// Fields returns the named, non-zero deltas keyed by bson field name.
// The repository turns this into a single $inc update document.
func (d StatDeltas) Fields() map[string]int {
	out := make(map[string]int)
	add := func(name string, v int) {
		if v != 0 {
			out[name] = v
		}
	}
	add("points", d.Points)
	add("two_points_made", d.TwoPointsMade)
	add("two_points_attempted", d.TwoPointsAttempted)
	add("three_points_made", d.ThreePointsMade)
	add("three_points_attempted", d.ThreePointsAttempted)
	add("free_throws_made", d.FreeThrowsMade)
	add("free_throws_attempted", d.FreeThrowsAttempted)
	add("rebounds", d.Rebounds)
	add("assists", d.Assists)
	add("steals", d.Steals)
	add("blocks", d.Blocks)
	add("turnovers", d.Turnovers)
	add("fouls", d.Fouls)
	add("minutes_played", d.MinutesPlayed)
	return out
}

// Negative reports whether any named delta would decrement a counter.
// Counters are append-only; decrements are rejected at the service boundary.
func (d StatDeltas) Negative() []string {
	var fields []string
	for name, v := range d.Fields() {
		if v < 0 {
			fields = append(fields, name)
		}
	}
	return fields
}
