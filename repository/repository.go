// Package repository stores expenses, reports and call statistics in MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a document does not exist in the caller's namespace.
var ErrNotFound = errors.New("document not found")

const (
	ExpensesCollection  = "expenses"
	ReportsCollection   = "reports"
	CallStatsCollection = "call_stats"
)

// EnsureIndexes creates the indexes the date-range and per-user queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	byUserCreated := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
	}
	if _, err := db.Collection(ExpensesCollection).Indexes().CreateOne(ctx, byUserCreated); err != nil {
		return fmt.Errorf("create expenses index: %w", err)
	}
	if _, err := db.Collection(ReportsCollection).Indexes().CreateOne(ctx, byUserCreated); err != nil {
		return fmt.Errorf("create reports index: %w", err)
	}
	return nil
}
