package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Webcam captures JPEG frames from a local video device via OpenCV.
// It implements the analysis.FrameSource interface.
type Webcam struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
	frame   gocv.Mat
	quality int
}

// OpenWebcam opens the capture device described by cfg.
func OpenWebcam(cfg Config) (*Webcam, error) {
	cap, err := openDevice(cfg)
	if err != nil {
		return nil, err
	}

	return &Webcam{
		capture: cap,
		frame:   gocv.NewMat(),
		quality: cfg.Quality,
	}, nil
}

func openDevice(cfg Config) (*gocv.VideoCapture, error) {
	cap, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open device %d: %w", cfg.Device, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	cap.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	return cap, nil
}

// Reopen closes the current device and opens it again with cfg. It is the
// Manager.OnConfigChange hook for a live service: capture blocks on the
// mutex until the swap completes, so in-flight frames finish first. On
// failure the webcam is left closed and the error surfaces to the caller.
func (w *Webcam) Reopen(cfg Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.capture != nil {
		w.capture.Close()
		w.capture = nil
	} else {
		// Fully closed webcam: the frame Mat was released too
		w.frame = gocv.NewMat()
	}

	cap, err := openDevice(cfg)
	if err != nil {
		return err
	}

	w.capture = cap
	w.quality = cfg.Quality
	return nil
}

// CaptureJPEG grabs the next frame and encodes it as JPEG.
func (w *Webcam) CaptureJPEG() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.capture == nil {
		return nil, fmt.Errorf("camera closed")
	}

	if ok := w.capture.Read(&w.frame); !ok {
		return nil, fmt.Errorf("read frame failed")
	}
	if w.frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, w.frame,
		[]int{gocv.IMWriteJpegQuality, w.quality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	// Copy out: the native buffer is reused
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the capture device.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.capture == nil {
		return nil
	}

	w.frame.Close()
	err := w.capture.Close()
	w.capture = nil
	return err
}
