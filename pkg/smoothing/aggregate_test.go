package smoothing

import "testing"

func TestSmoothEmotion_Empty(t *testing.T) {
	if got := SmoothEmotion(nil); got != nil {
		t.Errorf("empty window: got %+v, want nil", got)
	}
	if got := SmoothEmotion([]EmotionSample{}); got != nil {
		t.Errorf("empty slice: got %+v, want nil", got)
	}
}

func TestSmoothEmotion_CountWins(t *testing.T) {
	// happy appears twice, sad once with higher confidence; count wins
	got := SmoothEmotion([]EmotionSample{
		{Label: EmotionHappy, Confidence: 0.9},
		{Label: EmotionHappy, Confidence: 0.8},
		{Label: EmotionSad, Confidence: 0.95},
	})
	if got == nil {
		t.Fatal("expected a result")
	}
	if got.Label != EmotionHappy {
		t.Errorf("label: got %q, want %q", got.Label, EmotionHappy)
	}
	// round(((0.9+0.8)/2)*100) = 85
	if got.Confidence != 85 {
		t.Errorf("confidence: got %d, want 85", got.Confidence)
	}
}

func TestSmoothEmotion_TieBreakByAverageConfidence(t *testing.T) {
	// Counts are equal (1-1), so average confidence decides: sad wins
	got := SmoothEmotion([]EmotionSample{
		{Label: EmotionHappy, Confidence: 0.5},
		{Label: EmotionSad, Confidence: 0.9},
	})
	if got == nil {
		t.Fatal("expected a result")
	}
	if got.Label != EmotionSad {
		t.Errorf("label: got %q, want %q", got.Label, EmotionSad)
	}
	if got.Confidence != 90 {
		t.Errorf("confidence: got %d, want 90", got.Confidence)
	}
}

func TestSmoothEmotion_FullTieKeepsFirstEncountered(t *testing.T) {
	// Same count, same average confidence: the first label seen wins,
	// on every run
	for i := 0; i < 100; i++ {
		got := SmoothEmotion([]EmotionSample{
			{Label: EmotionNeutral, Confidence: 0.7},
			{Label: EmotionHappy, Confidence: 0.7},
		})
		if got == nil {
			t.Fatal("expected a result")
		}
		if got.Label != EmotionNeutral {
			t.Fatalf("run %d: got %q, want %q", i, got.Label, EmotionNeutral)
		}
	}
}

func TestSmoothEmotion_SingleSample(t *testing.T) {
	got := SmoothEmotion([]EmotionSample{{Label: EmotionSurprise, Confidence: 0.444}})
	if got == nil {
		t.Fatal("expected a result")
	}
	if got.Label != EmotionSurprise || got.Confidence != 44 {
		t.Errorf("got %+v, want {surprise 44}", got)
	}
}

func TestSmoothGender_Empty(t *testing.T) {
	if got := SmoothGender(nil); got != nil {
		t.Errorf("empty window: got %+v, want nil", got)
	}
}

func TestSmoothGender_CountOnly(t *testing.T) {
	// female wins on count despite male's higher single sample
	got := SmoothGender([]GenderSample{
		{Label: "male", Confidence: 0.6},
		{Label: "female", Confidence: 0.9},
		{Label: "female", Confidence: 0.7},
	})
	if got == nil {
		t.Fatal("expected a result")
	}
	if got.Label != "female" {
		t.Errorf("label: got %q, want female", got.Label)
	}
	// round(((0.9+0.7)/2)*100) = 80
	if got.Confidence != 80 {
		t.Errorf("confidence: got %d, want 80", got.Confidence)
	}
}

func TestSmoothGender_TieKeepsFirstEncountered(t *testing.T) {
	// No confidence tiebreak for gender: first-encountered wins even
	// when the other label has a higher average
	got := SmoothGender([]GenderSample{
		{Label: "male", Confidence: 0.5},
		{Label: "female", Confidence: 0.9},
	})
	if got == nil {
		t.Fatal("expected a result")
	}
	if got.Label != "male" {
		t.Errorf("label: got %q, want male", got.Label)
	}
}

func TestSmoothAge_Empty(t *testing.T) {
	if _, ok := SmoothAge(nil); ok {
		t.Error("empty window: expected ok=false")
	}
}

func TestSmoothAge_MeanRoundedToOneDecimal(t *testing.T) {
	got, ok := SmoothAge([]float64{30, 32, 31})
	if !ok {
		t.Fatal("expected a result")
	}
	if got != 31.0 {
		t.Errorf("got %v, want 31.0", got)
	}

	got, ok = SmoothAge([]float64{30, 31})
	if !ok {
		t.Fatal("expected a result")
	}
	if got != 30.5 {
		t.Errorf("got %v, want 30.5", got)
	}

	got, ok = SmoothAge([]float64{25.04, 25.04, 25.04})
	if !ok {
		t.Fatal("expected a result")
	}
	if got != 25.0 {
		t.Errorf("got %v, want 25.0", got)
	}
}

func TestConfig_Normalize(t *testing.T) {
	cfg := Config{WindowSize: 0, MinConfidence: -0.5}.Normalize()
	if cfg.WindowSize != 1 {
		t.Errorf("WindowSize: got %d, want 1", cfg.WindowSize)
	}
	if cfg.MinConfidence != 0 {
		t.Errorf("MinConfidence: got %v, want 0", cfg.MinConfidence)
	}

	cfg = Config{WindowSize: -10, MinConfidence: 2}.Normalize()
	if cfg.WindowSize != 1 || cfg.MinConfidence != 1 {
		t.Errorf("got %+v, want {1 1}", cfg)
	}

	cfg = Config{WindowSize: 8, MinConfidence: 0.4}.Normalize()
	if cfg.WindowSize != 8 || cfg.MinConfidence != 0.4 {
		t.Errorf("valid config changed: %+v", cfg)
	}
}

func TestEmotionDisplayName(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{EmotionNeutral, "Neutral"},
		{EmotionHappy, "Happy"},
		{EmotionSad, "Sad"},
		{EmotionAngry, "Angry"},
		{EmotionSurprise, "Surprised"},
		{EmotionFear, "Afraid"},
		{EmotionDisgust, "Disgusted"},
		{EmotionContempt, "Contemptuous"},
		{"confused", "confused"}, // unknown labels pass through
		{"", ""},
	}

	for _, c := range cases {
		if got := EmotionDisplayName(c.label); got != c.want {
			t.Errorf("EmotionDisplayName(%q): got %q, want %q", c.label, got, c.want)
		}
	}
}
