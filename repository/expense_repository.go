package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"expense-api/models"
)

// ExpenseRepository keeps one document per expense, scoped by user_id.
type ExpenseRepository struct {
	coll *mongo.Collection
}

func NewExpenseRepository(coll *mongo.Collection) *ExpenseRepository {
	return &ExpenseRepository{coll: coll}
}

func (r *ExpenseRepository) Insert(ctx context.Context, e models.Expense) error {
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Get(ctx context.Context, userID, id string) (models.Expense, error) {
	var e models.Expense
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Expense{}, ErrNotFound
	}
	if err != nil {
		return models.Expense{}, fmt.Errorf("find expense: %w", err)
	}
	return e, nil
}

// Find returns the user's expenses created within [from, to]. A nil bound is open.
func (r *ExpenseRepository) Find(ctx context.Context, userID string, from, to *time.Time) ([]models.Expense, error) {
	filter := bson.M{"user_id": userID}
	created := bson.M{}
	if from != nil {
		created["$gte"] = *from
	}
	if to != nil {
		created["$lte"] = *to
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cursor.Close(ctx)

	expenses := []models.Expense{}
	for cursor.Next(ctx) {
		var e models.Expense
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// Replace overwrites the whole expense document.
func (r *ExpenseRepository) Replace(ctx context.Context, e models.Expense) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": e.ID, "user_id": e.UserID}, e)
	if err != nil {
		return fmt.Errorf("replace expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) UpdateDescription(ctx context.Context, userID, id, description string) error {
	filter := bson.M{"_id": id, "user_id": userID}
	update := bson.M{"$set": bson.M{"description": description}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update expense description: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete expenses: %w", err)
	}
	return res.DeletedCount, nil
}
