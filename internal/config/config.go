// Package config provides environment configuration helpers for facewatch
// commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the facewatch service.
const (
	DefaultPort          = "8090"
	DefaultCameraDevice  = 0
	DefaultModelPath     = "models/face_detection_yunet.onnx"
	DefaultFrameInterval = 100 // milliseconds, ~10 fps analysis
)

// Port returns the dashboard port from FACEWATCH_PORT or the default.
func Port() string {
	if p := os.Getenv("FACEWATCH_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// LogLevel returns the log level from FACEWATCH_LOG_LEVEL or "info".
func LogLevel() string {
	if l := os.Getenv("FACEWATCH_LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}

// CameraDevice returns the capture device index from FACEWATCH_CAMERA.
func CameraDevice() int {
	return envInt("FACEWATCH_CAMERA", DefaultCameraDevice)
}

// ModelPath returns the YuNet model path from FACEWATCH_MODEL.
func ModelPath() string {
	if p := os.Getenv("FACEWATCH_MODEL"); p != "" {
		return p
	}
	return DefaultModelPath
}

// WindowSize returns the smoothing window size from FACEWATCH_WINDOW.
// Zero means "use the smoothing package default".
func WindowSize() int {
	return envInt("FACEWATCH_WINDOW", 0)
}

// MinConfidence returns the acceptance threshold from
// FACEWATCH_MIN_CONFIDENCE. Negative means "use the default".
func MinConfidence() float64 {
	v := os.Getenv("FACEWATCH_MIN_CONFIDENCE")
	if v == "" {
		return -1
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return -1
	}
	return f
}

// FrameIntervalMS returns the analysis tick interval in milliseconds from
// FACEWATCH_INTERVAL_MS.
func FrameIntervalMS() int {
	return envInt("FACEWATCH_INTERVAL_MS", DefaultFrameInterval)
}

// UplinkURL returns the collector websocket URL from FACEWATCH_UPLINK.
// Empty means the uplink is disabled.
func UplinkURL() string {
	return os.Getenv("FACEWATCH_UPLINK")
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
