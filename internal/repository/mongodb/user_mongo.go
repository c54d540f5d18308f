package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
)

type userRepository struct{ col *mongo.Collection }

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{col: db.Collection(usersCollection)}
}

func (r *userRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.User{}, err
	}
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	// Email uniqueness relies on the collection's unique index; duplicates
	// surface as ErrAlreadyExists through MapMongoError.
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		return model.User{}, repository.MapMongoError(err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.User{}, err
	}
	var out model.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return model.User{}, repository.MapMongoError(err)
	}
	return out, nil
}

func (r *userRepository) Update(ctx context.Context, u model.User) (model.User, error) {
	if err := ensureDB(r.col.Database()); err != nil {
		return model.User{}, err
	}
	u.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return model.User{}, repository.MapMongoError(err)
	}
	if res.MatchedCount == 0 {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

var _ repository.UserRepository = (*userRepository)(nil)
