package detect

import (
	"testing"

	"github.com/evelab/facewatch/pkg/analysis"
	"github.com/evelab/facewatch/pkg/smoothing"
)

func agePtr(v float64) *float64 { return &v }

func TestSelectPrimary_Empty(t *testing.T) {
	if got := SelectPrimary(nil); got != nil {
		t.Errorf("expected nil for empty input, got %+v", got)
	}
}

func TestSelectPrimary_Single(t *testing.T) {
	dets := []Detection{{X: 0.1, Y: 0.1, W: 0.2, H: 0.2, Confidence: 0.4}}
	got := SelectPrimary(dets)
	if got == nil || got.Confidence != 0.4 {
		t.Errorf("single detection: got %+v", got)
	}
}

func TestSelectPrimary_ConfidenceAndAreaWeighted(t *testing.T) {
	// Equal confidence: larger face wins
	dets := []Detection{
		{W: 0.1, H: 0.1, Confidence: 0.8},
		{W: 0.3, H: 0.3, Confidence: 0.8},
	}
	got := SelectPrimary(dets)
	if got == nil || got.W != 0.3 {
		t.Errorf("expected larger face, got %+v", got)
	}

	// Much higher confidence beats slightly larger area
	dets = []Detection{
		{W: 0.2, H: 0.2, Confidence: 0.95},
		{W: 0.25, H: 0.25, Confidence: 0.5},
	}
	got = SelectPrimary(dets)
	if got == nil || got.Confidence != 0.95 {
		t.Errorf("expected confident face, got %+v", got)
	}
}

func TestDetection_CenterAndArea(t *testing.T) {
	d := Detection{X: 0.2, Y: 0.4, W: 0.2, H: 0.2}
	cx, cy := d.Center()
	if cx != 0.3 {
		t.Errorf("center x: got %v, want 0.3", cx)
	}
	if cy != 0.5 {
		t.Errorf("center y: got %v, want 0.5", cy)
	}
	if a := d.Area(); a != 0.2*0.2 {
		t.Errorf("area: got %v", a)
	}
}

func TestMock_ScriptedFrames(t *testing.T) {
	m := NewMock()
	m.Enqueue(
		&analysis.Frame{Face: &analysis.Face{Age: agePtr(30)}},
		&analysis.Frame{},
	)

	f, err := m.Analyze(nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if f.Face == nil || f.Face.Age == nil || *f.Face.Age != 30 {
		t.Errorf("first frame: got %+v", f)
	}

	f, _ = m.Analyze(nil)
	if f.Face != nil {
		t.Errorf("second frame: expected no face, got %+v", f.Face)
	}

	// Queue drained: empty frames forever
	f, _ = m.Analyze(nil)
	if f.Face != nil {
		t.Errorf("drained queue: expected no face, got %+v", f.Face)
	}

	if m.Calls() != 3 {
		t.Errorf("calls: got %d, want 3", m.Calls())
	}
}

func TestMock_WorksAsSessionDetector(t *testing.T) {
	m := NewMock()
	var _ analysis.Detector = m

	s := analysis.NewSession(smoothing.Config{WindowSize: 3, MinConfidence: 0.3}, m)
	if s.State().String() != "idle" {
		t.Errorf("state: got %q, want idle", s.State())
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !m.Closed() {
		t.Error("expected Closed() after Close")
	}
}

func TestYuNetNewInvalidPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "/nonexistent/path/model.onnx"

	if _, err := NewYuNet(cfg); err == nil {
		t.Error("expected error for invalid model path")
	}
}

func TestYawFromLandmarks(t *testing.T) {
	// Nose centered between the eyes: facing the camera
	if got := yawFromLandmarks(100, 140, 120); got != 0 {
		t.Errorf("centered nose: got %v, want 0", got)
	}

	// Nose toward the left eye: positive yaw
	if got := yawFromLandmarks(100, 140, 130); got <= 0 {
		t.Errorf("offset nose: got %v, want > 0", got)
	}

	// Degenerate landmarks must not divide by zero
	if got := yawFromLandmarks(120, 120, 120); got != 0 {
		t.Errorf("degenerate eyes: got %v, want 0", got)
	}
}
