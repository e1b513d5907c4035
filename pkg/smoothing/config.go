package smoothing

// Defaults for a smoothing session.
const (
	// DefaultWindowSize keeps only the latest accepted observation.
	// With a window of one the aggregators degenerate to pass-through;
	// raise it (5-15 is typical) to get actual temporal smoothing.
	DefaultWindowSize = 1

	// DefaultMinConfidence rejects low-confidence emotion and gender
	// readings before they enter history.
	DefaultMinConfidence = 0.3
)

// Config holds the tunable smoothing parameters for one session.
// It is fixed for the session's lifetime; changing parameters means
// starting a new session.
type Config struct {
	// WindowSize is the history buffer capacity per attribute.
	WindowSize int `json:"window_size"`

	// MinConfidence is the acceptance threshold (0-1) for emotion and
	// gender observations. Age has no confidence and is never filtered.
	MinConfidence float64 `json:"min_confidence"`
}

// DefaultConfig returns the recommended smoothing configuration.
func DefaultConfig() Config {
	return Config{
		WindowSize:    DefaultWindowSize,
		MinConfidence: DefaultMinConfidence,
	}
}

// Normalize clamps out-of-range values into their documented domains:
// WindowSize below 1 becomes 1, MinConfidence is clamped into [0, 1].
// Sessions normalize once at construction so that a bad caller value can
// never corrupt history mid-session.
func (c Config) Normalize() Config {
	if c.WindowSize < 1 {
		c.WindowSize = 1
	}
	if c.MinConfidence < 0 {
		c.MinConfidence = 0
	}
	if c.MinConfidence > 1 {
		c.MinConfidence = 1
	}
	return c
}
