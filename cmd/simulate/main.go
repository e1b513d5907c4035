// Simulate drives the analysis pipeline with a scripted detector instead
// of a camera, so the smoothing behavior can be inspected without any
// hardware or models installed.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/evelab/facewatch/internal/log"
	"github.com/evelab/facewatch/pkg/analysis"
	"github.com/evelab/facewatch/pkg/detect"
	"github.com/evelab/facewatch/pkg/smoothing"
)

func main() {
	window := flag.Int("window", 10, "Smoothing window size")
	minConfidence := flag.Float64("min-confidence", 0.3, "Acceptance threshold")
	flag.Parse()

	log.Init("warn")

	cfg := smoothing.Config{WindowSize: *window, MinConfidence: *minConfidence}
	session := analysis.NewSession(cfg, detect.NewMock())
	if err := session.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "start:", err)
		os.Exit(1)
	}
	defer session.Stop()

	fmt.Printf("window=%d min_confidence=%.2f\n\n", *window, *minConfidence)
	fmt.Printf("%-5s %-28s %-22s %-14s %s\n", "frame", "raw", "emotion", "gender", "age")

	for i, frame := range script() {
		st := session.ProcessFrame(frame)
		fmt.Printf("%-5d %-28s %-22s %-14s %s\n",
			i+1, describeRaw(frame), describeLabel(st.Emotion, st.EmotionName),
			describeLabel(st.Gender, ""), describeAge(st.Age))
	}
}

// script is a short scene: a face appears, flickers through emotions with
// one low-confidence outlier, disappears for two frames, then returns. The
// smoothed columns should stay steadier than the raw column.
func script() []*analysis.Frame {
	return []*analysis.Frame{
		face(smoothing.EmotionNeutral, 0.72, "female", 0.91, 29),
		face(smoothing.EmotionNeutral, 0.68, "female", 0.88, 31),
		face(smoothing.EmotionHappy, 0.81, "female", 0.90, 30),
		face(smoothing.EmotionSad, 0.12, "female", 0.85, 30), // below threshold
		face(smoothing.EmotionHappy, 0.77, "male", 0.52, 32),
		{}, // face lost
		{},
		face(smoothing.EmotionHappy, 0.83, "female", 0.93, 31),
		face(smoothing.EmotionSurprise, 0.64, "female", 0.89, 30),
		face(smoothing.EmotionHappy, 0.79, "female", 0.92, 29),
	}
}

func face(emotion string, emotionConf float64, gender string, genderConf, age float64) *analysis.Frame {
	return &analysis.Frame{Face: &analysis.Face{
		Confidence: 0.95,
		Quality:    0.8,
		Age:        &age,
		Gender:     &analysis.Gender{Label: gender, Confidence: genderConf},
		Emotions:   []analysis.EmotionCandidate{{Label: emotion, Confidence: emotionConf}},
	}}
}

func describeRaw(frame *analysis.Frame) string {
	if frame == nil || frame.Face == nil {
		return "(no face)"
	}
	f := frame.Face
	raw := "?"
	if len(f.Emotions) > 0 {
		raw = fmt.Sprintf("%s %.2f", f.Emotions[0].Label, f.Emotions[0].Confidence)
	}
	return fmt.Sprintf("%s / %s / %.0f", raw, f.Gender.Label, *f.Age)
}

func describeLabel(score *smoothing.LabelScore, display string) string {
	if score == nil {
		return "-"
	}
	label := score.Label
	if display != "" {
		label = display
	}
	return fmt.Sprintf("%s (%d%%)", label, score.Confidence)
}

func describeAge(age *float64) string {
	if age == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *age)
}
