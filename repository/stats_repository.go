package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"expense-api/models"
)

// StatsRepository keeps one counter document per canonical endpoint,
// keyed by its storage key.
type StatsRepository struct {
	coll *mongo.Collection
}

func NewStatsRepository(coll *mongo.Collection) *StatsRepository {
	return &StatsRepository{coll: coll}
}

// Increment bumps the counter for key in a single upsert. The endpoint is
// only written when the document is created.
func (r *StatsRepository) Increment(ctx context.Context, key, endpoint string, at time.Time) (models.CallStat, error) {
	update := bson.M{
		"$inc":         bson.M{"count": 1},
		"$set":         bson.M{"last_call": at},
		"$setOnInsert": bson.M{"endpoint": endpoint},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stat models.CallStat
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": key}, update, opts).Decode(&stat); err != nil {
		return models.CallStat{}, fmt.Errorf("increment call stat %s: %w", key, err)
	}
	return stat, nil
}

// List returns every counter in ascending key order.
func (r *StatsRepository) List(ctx context.Context) ([]models.CallStat, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find call stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []models.CallStat{}
	for cursor.Next(ctx) {
		var stat models.CallStat
		if err := cursor.Decode(&stat); err != nil {
			return nil, fmt.Errorf("decode call stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate call stats: %w", err)
	}
	return stats, nil
}

func (r *StatsRepository) SetEndpoint(ctx context.Context, key, endpoint string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": bson.M{"endpoint": endpoint}})
	if err != nil {
		return fmt.Errorf("set endpoint on %s: %w", key, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
