package protocol

import (
	"encoding/base64"
	"time"

	"github.com/evelab/facewatch/pkg/analysis"
)

// NewStateMessage creates a state message for one analysis result
func NewStateMessage(nodeID, sessionID string, state analysis.State) (*Message, error) {
	return NewMessage(TypeState, StateData{
		NodeID:    nodeID,
		SessionID: sessionID,
		State:     state,
	})
}

// NewFrameMessage creates a frame message from raw JPEG data
func NewFrameMessage(width, height int, jpegData []byte, frameID uint64) (*Message, error) {
	return NewMessage(TypeFrame, FrameData{
		Width:   width,
		Height:  height,
		Format:  "jpeg",
		Data:    base64.StdEncoding.EncodeToString(jpegData),
		FrameID: frameID,
	})
}

// DecodeFrame returns the raw JPEG bytes of a frame payload
func (f *FrameData) DecodeFrame() ([]byte, error) {
	return base64.StdEncoding.DecodeString(f.Data)
}

// NewPingMessage creates a ping message
func NewPingMessage(nodeID string) (*Message, error) {
	return NewMessage(TypePing, PingData{NodeID: nodeID})
}

// NewPongMessage creates a pong response for a ping timestamp
func NewPongMessage(pingTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		PingTS: pingTS,
		PongTS: time.Now().UnixMilli(),
	})
}
