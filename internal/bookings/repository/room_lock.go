package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"roomly/pkg/config"
	"roomly/pkg/model"
)

const LockCollectionName = "Room_locks"

// RoomLockRepository provides the advisory per-room lock. Acquisition is a
// unique _id insert; a concurrent holder surfaces as a duplicate key error.
type RoomLockRepository interface {
	Create(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoRoomLockRepository struct {
	collection *mongo.Collection
}

func NewRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoRoomLockRepository) Create(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error) {
	lock.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoRoomLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
