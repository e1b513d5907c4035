package detect

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/evelab/facewatch/pkg/analysis"
)

// YuNet analyzes frames with OpenCV's FaceDetectorYN. It produces the
// primary face's bounding box, detection confidence, a quality heuristic
// and a rough yaw estimate from the eye landmarks. Attributes it cannot
// produce (age, gender, emotion, liveness) are left absent; the pipeline
// skips those windows for the frame.
type YuNet struct {
	detector gocv.FaceDetectorYN
	config   Config
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a YuNet face detector using GoCV's built-in
// FaceDetectorYN.
func NewYuNet(cfg Config) (*YuNet, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"", // No config file needed for ONNX
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // Top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNet{
		detector: detector,
		config:   cfg,
	}, nil
}

// Analyze runs detection on a JPEG frame and returns the primary face,
// or a faceless frame when nothing is detected.
func (d *YuNet) Analyze(jpeg []byte) (*analysis.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	imgW := float64(img.Cols())
	imgH := float64(img.Rows())

	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(img, &faces)

	var detections []Detection
	var yaws []float64
	for r := 0; r < faces.Rows(); r++ {
		// YuNet output format (15 columns):
		// 0-3: x, y, w, h (bounding box in pixels)
		// 4-13: 5 facial landmarks (x,y pairs): eyes, nose, mouth corners
		// 14: face score
		x := float64(faces.GetFloatAt(r, 0))
		y := float64(faces.GetFloatAt(r, 1))
		w := float64(faces.GetFloatAt(r, 2))
		h := float64(faces.GetFloatAt(r, 3))
		score := float64(faces.GetFloatAt(r, 14))

		detections = append(detections, Detection{
			X:          x / imgW,
			Y:          y / imgH,
			W:          w / imgW,
			H:          h / imgH,
			Confidence: score,
		})
		yaws = append(yaws, yawFromLandmarks(
			float64(faces.GetFloatAt(r, 4)), // right eye x
			float64(faces.GetFloatAt(r, 6)), // left eye x
			float64(faces.GetFloatAt(r, 8)), // nose x
		))
	}

	primary := SelectPrimary(detections)
	if primary == nil {
		return &analysis.Frame{}, nil
	}

	face := &analysis.Face{
		Confidence: primary.Confidence,
		Quality:    qualityScore(*primary),
		Box:        primary.Box(),
	}

	for i := range detections {
		if &detections[i] == primary {
			face.Pose = &analysis.Pose{Yaw: yaws[i]}
			break
		}
	}

	return &analysis.Frame{Face: face}, nil
}

// qualityScore is a cheap proxy for image quality: bigger faces carry more
// pixels and analyze better. Clamped to 1 at a quarter of the frame.
func qualityScore(d Detection) float64 {
	q := d.Area() / 0.25
	if q > 1 {
		q = 1
	}
	return q
}

// yawFromLandmarks estimates head yaw in radians from the horizontal
// offset of the nose relative to the eye midpoint. Crude but monotonic,
// which is all the display needs.
func yawFromLandmarks(rightEyeX, leftEyeX, noseX float64) float64 {
	eyeSpan := leftEyeX - rightEyeX
	if eyeSpan == 0 {
		return 0
	}
	mid := (rightEyeX + leftEyeX) / 2
	offset := (noseX - mid) / eyeSpan // roughly -0.5..0.5
	return math.Atan(offset)
}

// Close releases the detector resources.
func (d *YuNet) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}
