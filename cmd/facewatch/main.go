// FaceWatch - live face analysis with temporally smoothed attributes.
//
// Captures frames from a local camera, runs face detection, and serves a
// dashboard with the stabilized values.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/evelab/facewatch/internal/config"
	"github.com/evelab/facewatch/internal/log"
	"github.com/evelab/facewatch/pkg/analysis"
	"github.com/evelab/facewatch/pkg/camera"
	"github.com/evelab/facewatch/pkg/detect"
	"github.com/evelab/facewatch/pkg/protocol"
	"github.com/evelab/facewatch/pkg/smoothing"
	"github.com/evelab/facewatch/pkg/uplink"
	"github.com/evelab/facewatch/pkg/web"
)

func main() {
	// .env is optional; real deployments use the environment directly
	godotenv.Load()

	port := flag.String("port", config.Port(), "Dashboard port")
	device := flag.Int("camera", config.CameraDevice(), "Capture device index")
	modelPath := flag.String("model", config.ModelPath(), "YuNet ONNX model path")
	window := flag.Int("window", config.WindowSize(), "Smoothing window size (0 = default)")
	minConfidence := flag.Float64("min-confidence", config.MinConfidence(), "Acceptance threshold (negative = default)")
	intervalMS := flag.Int("interval", config.FrameIntervalMS(), "Analysis interval in milliseconds")
	uplinkURL := flag.String("uplink", config.UplinkURL(), "Collector websocket URL (empty = disabled)")
	flag.Parse()

	log.Init(config.LogLevel())

	smoothCfg := smoothing.DefaultConfig()
	if *window > 0 {
		smoothCfg.WindowSize = *window
	}
	if *minConfidence >= 0 {
		smoothCfg.MinConfidence = *minConfidence
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	// Camera
	camCfg := camera.DefaultConfig()
	camCfg.Device = *device
	cam, err := camera.OpenWebcam(camCfg)
	if err != nil {
		log.Error("camera open failed", "error", err)
		os.Exit(1)
	}
	defer cam.Close()

	cameras := camera.NewManagerWith(camCfg)
	cameras.OnConfigChange = cam.Reopen

	// Detector
	detCfg := detect.DefaultConfig()
	detCfg.ModelPath = *modelPath
	detector, err := detect.NewYuNet(detCfg)
	if err != nil {
		log.Error("detector init failed", "error", err)
		os.Exit(1)
	}
	defer detector.Close()

	// Session
	session := analysis.NewSession(smoothCfg, detector)

	// Dashboard
	server := web.NewServer(*port, session, cameras)
	server.StartAsync()
	defer server.Shutdown()

	// Optional collector uplink
	var up *uplink.Uplink
	if *uplinkURL != "" {
		up = uplink.New(*uplinkURL, session.ID)
		go up.Run(ctx)
	}

	// Tee captured frames to the dashboard camera feed
	source := &teeSource{cam: cam, server: server}

	onState := func(st analysis.State) {
		server.PublishState(st)
		if up != nil {
			if msg, err := protocol.NewStateMessage(session.ID, session.ID, st); err == nil {
				up.Publish(msg)
			}
		}
	}

	interval := time.Duration(*intervalMS) * time.Millisecond
	if err := session.Run(ctx, source, interval, onState); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("frame loop ended", "error", err)
		os.Exit(1)
	}
}

// teeSource publishes every captured frame to the dashboard before handing
// it to the detector.
type teeSource struct {
	cam    *camera.Webcam
	server *web.Server
}

func (t *teeSource) CaptureJPEG() ([]byte, error) {
	jpeg, err := t.cam.CaptureJPEG()
	if err != nil {
		return nil, err
	}
	t.server.PublishFrame(jpeg)
	return jpeg, nil
}
