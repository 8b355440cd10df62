package models

import (
	"time"
)

// CallStat counts the calls made to one canonical endpoint.
type CallStat struct {
	Key      string    `json:"key" bson:"_id"`
	Endpoint string    `json:"endpoint" bson:"endpoint,omitempty"`
	Count    int64     `json:"count" bson:"count"`
	LastCall time.Time `json:"last_call" bson:"last_call"`
}
