package queue

import (
	"encoding/json"
	"time"
)

// CallMessage announces one API call to be counted by the statistics worker.
type CallMessage struct {
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCallMessage(path string) *CallMessage {
	return &CallMessage{Path: path, Timestamp: time.Now()}
}

func (m *CallMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CallMessageFromJSON(data []byte) (*CallMessage, error) {
	var msg CallMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
