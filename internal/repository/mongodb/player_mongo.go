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

type playerRepository struct{ col *mongo.Collection }

func NewPlayerRepository(db *mongo.Database) repository.PlayerRepository {
	return &playerRepository{col: db.Collection(playersCollection)}
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.Player{}, err
	}
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return model.Player{}, repository.MapMongoError(err)
	}
	return p, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.Player, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.Player{}, err
	}
	var out model.Player
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return model.Player{}, repository.MapMongoError(err)
	}
	return out, nil
}

func (r *playerRepository) ListByTeam(ctx context.Context, teamID primitive.ObjectID, p repository.Page) (repository.PageResult[model.Player], error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	filter := bson.M{"team_id": teamID}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return repository.PageResult[model.Player]{}, repository.MapMongoError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "number", Value: 1}}).
		SetLimit(limit).
		SetSkip(offset)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return repository.PageResult[model.Player]{}, repository.MapMongoError(err)
	}
	defer cur.Close(ctx)

	res := repository.PageResult[model.Player]{Items: make([]model.Player, 0, limit), Total: int(total)}
	if err := cur.All(ctx, &res.Items); err != nil {
		return repository.PageResult[model.Player]{}, repository.MapMongoError(err)
	}
	return res, nil
}

func (r *playerRepository) Update(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.Player{}, err
	}
	p.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return model.Player{}, repository.MapMongoError(err)
	}
	if res.MatchedCount == 0 {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
