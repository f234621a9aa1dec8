// internal/repository/activity_repository.go
package repository

import (
	"context"

	"assistant-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type activityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(collection *mongo.Collection) ActivityRepository {
	return &activityRepository{
		collection: collection,
	}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.ActivityLog) error {
	activity.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, activity)
	return err
}

func (r *activityRepository) GetRecent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *activityRepository) GetByTarget(ctx context.Context, targetID string, limit int) ([]models.ActivityLog, error) {
	return r.find(ctx, bson.M{"targetId": targetID}, limit)
}

func (r *activityRepository) find(ctx context.Context, filter bson.M, limit int) ([]models.ActivityLog, error) {
	// Sort by timestamp descending (most recent first)
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []models.ActivityLog
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}
