// Package protocol defines the WebSocket message types exchanged between a
// facewatch node and a remote collector. The collector side speaks the
// same envelope, so both ends share this package.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/evelab/facewatch/pkg/analysis"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Node → Collector messages
	TypeState MessageType = "state" // Smoothed analysis state
	TypeFrame MessageType = "frame" // Video frame snapshot

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// StateData carries one smoothed display state for a session.
type StateData struct {
	NodeID    string         `json:"node_id"`
	SessionID string         `json:"session_id"`
	State     analysis.State `json:"state"`
}

// FrameData contains a video frame snapshot
type FrameData struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Format  string `json:"format"` // "jpeg"
	Data    string `json:"data"`   // base64 encoded
	FrameID uint64 `json:"frame_id,omitempty"`
}

// PingData is a health check request
type PingData struct {
	NodeID string `json:"node_id,omitempty"`
}

// PongData is a health check response
type PongData struct {
	PingTS int64 `json:"ping_ts"` // Timestamp from the ping
	PongTS int64 `json:"pong_ts"` // When the pong was sent
}
