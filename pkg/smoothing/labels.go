package smoothing

// Emotion labels the detector can produce.
const (
	EmotionNeutral  = "neutral"
	EmotionHappy    = "happy"
	EmotionSad      = "sad"
	EmotionAngry    = "angry"
	EmotionSurprise = "surprise"
	EmotionFear     = "fear"
	EmotionDisgust  = "disgust"
	EmotionContempt = "contempt"
)

// emotionDisplayNames maps raw detector labels to the strings shown on the
// dashboard. The set is closed; anything else passes through as-is.
var emotionDisplayNames = map[string]string{
	EmotionNeutral:  "Neutral",
	EmotionHappy:    "Happy",
	EmotionSad:      "Sad",
	EmotionAngry:    "Angry",
	EmotionSurprise: "Surprised",
	EmotionFear:     "Afraid",
	EmotionDisgust:  "Disgusted",
	EmotionContempt: "Contemptuous",
}

// EmotionDisplayName returns the user-facing name for a raw emotion label.
// Unknown labels are returned unchanged so a model update can never blank
// out the panel.
func EmotionDisplayName(label string) string {
	if name, ok := emotionDisplayNames[label]; ok {
		return name
	}
	return label
}
