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

type matchRepository struct{ col *mongo.Collection }

func NewMatchRepository(db *mongo.Database) repository.MatchRepository {
	return &matchRepository{col: db.Collection(matchesCollection)}
}

func (r *matchRepository) Create(ctx context.Context, m model.Match) (model.Match, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.Match{}, err
	}
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.PeriodsHistory == nil {
		m.PeriodsHistory = []model.PeriodRecord{}
	}
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return model.Match{}, repository.MapMongoError(err)
	}
	return m, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.Match, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.Match{}, err
	}
	var out model.Match
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if err != nil {
		return model.Match{}, repository.MapMongoError(err)
	}
	return out, nil
}

// Replace persists the whole match document in a single write. This is the
// ledger's only mutation path for an existing match; there are no field-level
// updates, so a failed call leaves no partial state behind.
func (r *matchRepository) Replace(ctx context.Context, m model.Match) (model.Match, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.Match{}, err
	}
	m.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return model.Match{}, repository.MapMongoError(err)
	}
	if res.MatchedCount == 0 {
		return model.Match{}, repository.ErrNotFound
	}
	return m, nil
}

func (r *matchRepository) ListByTeam(ctx context.Context, teamID primitive.ObjectID, p repository.Page) (repository.PageResult[model.Match], error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return repository.PageResult[model.Match]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	filter := bson.M{"team_id": teamID}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return repository.PageResult[model.Match]{}, repository.MapMongoError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return repository.PageResult[model.Match]{}, repository.MapMongoError(err)
	}
	defer cur.Close(ctx)

	res := repository.PageResult[model.Match]{Items: make([]model.Match, 0, limit), Total: int(total)}
	if err := cur.All(ctx, &res.Items); err != nil {
		return repository.PageResult[model.Match]{}, repository.MapMongoError(err)
	}
	return res, nil
}

var _ repository.MatchRepository = (*matchRepository)(nil)
