// Package mongodb implements the repository contracts on top of the Mongo
// driver. One file per entity, mirroring the collection layout.
package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names are fixed here so repositories and indexes agree.
const (
	usersCollection   = "users"
	teamsCollection   = "teams"
	playersCollection = "players"
	matchesCollection = "matches"
	statsCollection   = "player_stats"
)

const defaultPageLimit = 50

func sanitizeLimitOffset(limit, offset int) (int64, int64) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return int64(limit), int64(offset)
}

// helper to assert we didn't accidentally nil the database handle
func ensureDB(db *mongo.Database) error {
	if db == nil {
		return errors.New("mongo database is nil")
	}
	return nil
}
