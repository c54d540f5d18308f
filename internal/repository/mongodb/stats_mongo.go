package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
)

type statsRepository struct{ col *mongo.Collection }

func NewStatsRepository(db *mongo.Database) repository.StatsRepository {
	return &statsRepository{col: db.Collection(statsCollection)}
}

// InsertMany bootstraps the zeroed stat documents for a match in one driver
// call: one per starting player plus the synthetic opponent document.
func (r *statsRepository) InsertMany(ctx context.Context, docs []model.PlayerStats) ([]model.PlayerStats, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	payload := make([]interface{}, 0, len(docs))
	for i := range docs {
		docs[i].ID = primitive.NewObjectID()
		docs[i].CreatedAt = now
		docs[i].UpdatedAt = now
		payload = append(payload, docs[i])
	}
	if _, err := r.col.InsertMany(ctx, payload); err != nil {
		return nil, repository.MapMongoError(err)
	}
	return docs, nil
}

func (r *statsRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.PlayerStats, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.PlayerStats{}, err
	}
	var out model.PlayerStats
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return model.PlayerStats{}, repository.MapMongoError(err)
	}
	return out, nil
}

// Increment applies the non-zero deltas as a single $inc on one document.
// Atomicity is the engine's: no read-modify-write, no merge logic here.
func (r *statsRepository) Increment(ctx context.Context, id primitive.ObjectID, deltas model.StatDeltas) (model.PlayerStats, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.PlayerStats{}, err
	}
	inc := bson.M{}
	for field, v := range deltas.Fields() {
		inc[field] = v
	}
	update := bson.M{
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out model.PlayerStats
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out)
	if err != nil {
		return model.PlayerStats{}, repository.MapMongoError(err)
	}
	return out, nil
}

func (r *statsRepository) ListByMatch(ctx context.Context, matchID primitive.ObjectID) ([]model.PlayerStats, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return nil, err
	}
	cur, err := r.col.Find(ctx, bson.M{"match_id": matchID})
	if err != nil {
		return nil, repository.MapMongoError(err)
	}
	defer cur.Close(ctx)

	out := make([]model.PlayerStats, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, repository.MapMongoError(err)
	}
	return out, nil
}

var _ repository.StatsRepository = (*statsRepository)(nil)
