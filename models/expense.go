package models

import (
	"time"
)

type Expense struct {
	ID          string    `json:"expense_id" bson:"_id"`
	UserID      string    `json:"-" bson:"user_id"`
	Description string    `json:"description" bson:"description"`
	Items       []Item    `json:"items" bson:"items"`
	TotalPrice  float64   `json:"total_price" bson:"total_price"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ComputeTotal returns the sum of item subtotals.
func (e Expense) ComputeTotal() float64 {
	var total float64
	for _, item := range e.Items {
		total += item.Subtotal()
	}
	return total
}
