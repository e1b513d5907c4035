package analysis

import (
	"math"

	"github.com/evelab/facewatch/pkg/smoothing"
)

// PoseDegrees is a head pose converted for display: degrees, one decimal.
type PoseDegrees struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// State is what the dashboard renders for one frame. Smoothed values come
// from the history windows; everything else is the current frame's raw
// reading, rounded or unit-converted but never smoothed. A frame with no
// detected face yields the empty state: every field absent. The history
// windows survive such frames, so the smoothed values reappear intact on
// the next detection.
type State struct {
	FaceDetected bool `json:"face_detected"`

	// Raw per-frame pass-through
	Confidence *int         `json:"confidence,omitempty"` // percent
	Quality    *int         `json:"quality,omitempty"`    // percent
	Distance   *float64     `json:"distance,omitempty"`   // meters, 2 decimals
	Realness   *int         `json:"realness,omitempty"`   // percent
	Liveness   *int         `json:"liveness,omitempty"`   // percent
	Pose       *PoseDegrees `json:"pose,omitempty"`
	Box        *Box         `json:"box,omitempty"`

	// Smoothed attributes
	Age     *float64              `json:"age,omitempty"`
	Gender  *smoothing.LabelScore `json:"gender,omitempty"`
	Emotion *smoothing.LabelScore `json:"emotion,omitempty"`

	// EmotionName is the display name for Emotion.Label.
	EmotionName string `json:"emotion_name,omitempty"`
}

// percent converts a 0-1 score to a rounded integer percentage.
func percent(v float64) *int {
	p := int(math.Round(v * 100))
	return &p
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// poseForDisplay converts detector pose angles from radians to degrees.
func poseForDisplay(p *Pose) *PoseDegrees {
	if p == nil {
		return nil
	}
	return &PoseDegrees{
		Roll:  round1(Degrees(p.Roll)),
		Pitch: round1(Degrees(p.Pitch)),
		Yaw:   round1(Degrees(p.Yaw)),
	}
}
