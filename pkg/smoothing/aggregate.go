package smoothing

import "math"

// EmotionSample is one accepted emotion reading for one frame.
type EmotionSample struct {
	Label      string
	Confidence float64 // 0-1
}

// GenderSample is one accepted gender reading for one frame.
type GenderSample struct {
	Label      string
	Confidence float64 // 0-1
}

// LabelScore is a smoothed categorical result: the winning label and its
// average confidence as an integer percentage.
type LabelScore struct {
	Label      string `json:"label"`
	Confidence int    `json:"confidence"` // 0-100
}

// labelStats accumulates per-label counts in first-encounter order.
// A slice rather than a map: tie-breaking must be deterministic, and Go
// map iteration order is not.
type labelStats struct {
	label string
	count int
	sum   float64
}

func (s labelStats) avg() float64 {
	return s.sum / float64(s.count)
}

// accumulate folds samples into ordered per-label stats.
func accumulate(labels []string, confidences []float64) []labelStats {
	stats := make([]labelStats, 0, 4)
	for i, label := range labels {
		found := false
		for j := range stats {
			if stats[j].label == label {
				stats[j].count++
				stats[j].sum += confidences[i]
				found = true
				break
			}
		}
		if !found {
			stats = append(stats, labelStats{label: label, count: 1, sum: confidences[i]})
		}
	}
	return stats
}

// SmoothEmotion reduces an emotion window to the label to display.
// The winner has the highest count; ties go to the higher average
// confidence; ties in both go to the label seen first. Returns nil when
// the window is empty.
func SmoothEmotion(samples []EmotionSample) *LabelScore {
	if len(samples) == 0 {
		return nil
	}

	labels := make([]string, len(samples))
	confidences := make([]float64, len(samples))
	for i, s := range samples {
		labels[i] = s.Label
		confidences[i] = s.Confidence
	}

	stats := accumulate(labels, confidences)
	best := stats[0]
	for _, s := range stats[1:] {
		if s.count > best.count || (s.count == best.count && s.avg() > best.avg()) {
			best = s
		}
	}

	return &LabelScore{
		Label:      best.label,
		Confidence: int(math.Round(best.avg() * 100)),
	}
}

// SmoothGender reduces a gender window to the label to display.
// Unlike emotion there is no confidence tiebreak: the winner is simply the
// most frequent label, ties going to the label seen first. Returns nil
// when the window is empty.
func SmoothGender(samples []GenderSample) *LabelScore {
	if len(samples) == 0 {
		return nil
	}

	labels := make([]string, len(samples))
	confidences := make([]float64, len(samples))
	for i, s := range samples {
		labels[i] = s.Label
		confidences[i] = s.Confidence
	}

	stats := accumulate(labels, confidences)
	best := stats[0]
	for _, s := range stats[1:] {
		if s.count > best.count {
			best = s
		}
	}

	return &LabelScore{
		Label:      best.label,
		Confidence: int(math.Round(best.avg() * 100)),
	}
}

// SmoothAge reduces an age window to its arithmetic mean, rounded to one
// decimal place. The second return value is false when the window is empty.
func SmoothAge(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	return math.Round(mean*10) / 10, true
}
