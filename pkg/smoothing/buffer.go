package smoothing

// PushLimit appends v to items and keeps the result bounded to limit
// elements by evicting from the front, oldest first. Insertion order is
// temporal order, so the returned slice always holds the most recent
// observations. Amortized O(1) per call.
//
// A limit of zero or less is treated as an always-empty buffer: the push
// happens and is immediately evicted, so the result has length 0. Callers
// that want a real window must pass a positive limit (Config.Normalize
// guarantees one).
func PushLimit[T any](items []T, v T, limit int) []T {
	items = append(items, v)
	if limit < 0 {
		limit = 0
	}
	for len(items) > limit {
		items = items[1:]
	}
	return items
}

// History holds the per-attribute windows for one analysis session.
// It is owned by exactly one session and mutated only from its frame loop.
type History struct {
	Emotions []EmotionSample
	Genders  []GenderSample
	Ages     []float64
}

// NewHistory returns empty windows for all three attributes.
func NewHistory() *History {
	return &History{}
}

// PushEmotion records an accepted emotion observation, evicting the oldest
// once the window is full.
func (h *History) PushEmotion(s EmotionSample, limit int) {
	h.Emotions = PushLimit(h.Emotions, s, limit)
}

// PushGender records an accepted gender observation.
func (h *History) PushGender(s GenderSample, limit int) {
	h.Genders = PushLimit(h.Genders, s, limit)
}

// PushAge records an age estimate. Age carries no confidence, so every
// frame whose detector produced one contributes.
func (h *History) PushAge(age float64, limit int) {
	h.Ages = PushLimit(h.Ages, age, limit)
}
