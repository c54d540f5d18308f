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

type teamRepository struct{ col *mongo.Collection }

func NewTeamRepository(db *mongo.Database) repository.TeamRepository {
	return &teamRepository{col: db.Collection(teamsCollection)}
}

func (r *teamRepository) Create(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.Team{}, err
	}
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return model.Team{}, repository.MapMongoError(err)
	}
	return t, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.Team, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.Team{}, err
	}
	var out model.Team
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return model.Team{}, repository.MapMongoError(err)
	}
	return out, nil
}

func (r *teamRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, p repository.Page) (repository.PageResult[model.Team], error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return repository.PageResult[model.Team]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	filter := bson.M{"user_id": userID}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return repository.PageResult[model.Team]{}, repository.MapMongoError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(limit).
		SetSkip(offset)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return repository.PageResult[model.Team]{}, repository.MapMongoError(err)
	}
	defer cur.Close(ctx)

	res := repository.PageResult[model.Team]{Items: make([]model.Team, 0, limit), Total: int(total)}
	if err := cur.All(ctx, &res.Items); err != nil {
		return repository.PageResult[model.Team]{}, repository.MapMongoError(err)
	}
	return res, nil
}

func (r *teamRepository) Update(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.Team{}, err
	}
	t.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return model.Team{}, repository.MapMongoError(err)
	}
	if res.MatchedCount == 0 {
		return model.Team{}, repository.ErrNotFound
	}
	return t, nil
}

var _ repository.TeamRepository = (*teamRepository)(nil)
