package models

import (
	"time"
)

// Report is an immutable snapshot of the expenses in a date window.
type Report struct {
	ID                 string     `json:"report_id" bson:"_id"`
	UserID             string     `json:"-" bson:"user_id"`
	DateFrom           *time.Time `json:"date_from" bson:"date_from"`
	DateTo             *time.Time `json:"date_to" bson:"date_to"`
	Expenses           []Expense  `json:"expenses" bson:"expenses"`
	MostExpensiveItems []Item     `json:"most_expensive_items" bson:"most_expensive_items"`
	TotalPrice         float64    `json:"total_price" bson:"total_price"`
	CreatedAt          time.Time  `json:"created_at" bson:"created_at"`
}
