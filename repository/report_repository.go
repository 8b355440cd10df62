package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"expense-api/models"
)

// ReportRepository stores report snapshots. Reports embed their expenses
// and are never modified after insertion.
type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(coll *mongo.Collection) *ReportRepository {
	return &ReportRepository{coll: coll}
}

func (r *ReportRepository) Insert(ctx context.Context, rep models.Report) error {
	if _, err := r.coll.InsertOne(ctx, rep); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) Get(ctx context.Context, userID, id string) (models.Report, error) {
	var rep models.Report
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&rep)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Report{}, ErrNotFound
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("find report: %w", err)
	}
	return rep, nil
}

// ListIDs returns report ids in creation order.
func (r *ReportRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	findOptions := options.Find()
	findOptions.SetProjection(bson.M{"_id": 1})
	findOptions.SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode report id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return ids, nil
}

func (r *ReportRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReportRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete reports: %w", err)
	}
	return res.DeletedCount, nil
}
