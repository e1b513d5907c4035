// Package analysis runs the per-frame face analysis pipeline: it filters
// raw detector output by confidence, feeds the smoothing windows, and
// produces the stabilized state shown on the dashboard.
package analysis

// Box is a face bounding box in normalized image coordinates (0-1).
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Pose holds head orientation angles in radians as reported by the
// detector.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// EmotionCandidate is one entry of the detector's per-frame emotion list.
// The list is ordered as the detector emitted it; that order breaks ties
// when two candidates share the top confidence.
type EmotionCandidate struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // 0-1
}

// Gender is the detector's per-frame gender reading.
type Gender struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // 0-1
}

// Face is the raw per-frame reading for the primary detected face.
// Optional fields are pointers: a nil field means the detector did not
// produce that attribute this frame, and the pipeline skips it rather
// than treating it as an error.
type Face struct {
	Confidence float64            `json:"confidence"`    // detection score, 0-1
	Quality    float64            `json:"quality"`       // image quality score, 0-1
	Age        *float64           `json:"age,omitempty"` // years
	Gender     *Gender            `json:"gender,omitempty"`
	Emotions   []EmotionCandidate `json:"emotions,omitempty"`

	Distance *float64 `json:"distance,omitempty"` // meters
	Realness *float64 `json:"realness,omitempty"` // anti-spoof score, 0-1
	Liveness *float64 `json:"liveness,omitempty"` // 0-1
	Pose     *Pose    `json:"pose,omitempty"`
	Box      *Box     `json:"box,omitempty"`
}

// Frame is one detector result: zero or one primary face.
type Frame struct {
	Face *Face `json:"face,omitempty"`
}
