package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evelab/facewatch/internal/log"
	"github.com/evelab/facewatch/pkg/smoothing"
)

// Common errors returned by sessions.
var (
	ErrAlreadyActive = errors.New("analysis: session already active")
	ErrNotActive     = errors.New("analysis: session not active")
)

// SessionState is the lifecycle state of a session.
type SessionState int

const (
	// StateIdle means the session is not processing frames. The history
	// windows may still hold observations from a previous run.
	StateIdle SessionState = iota

	// StateActive means the session accepts one frame per tick.
	StateActive
)

// String returns the state name for logs and the API.
func (s SessionState) String() string {
	switch s {
	case StateActive:
		return "active"
	default:
		return "idle"
	}
}

// Detector produces one Frame per captured image. Implementations live in
// pkg/detect; the session never looks behind this interface.
type Detector interface {
	Analyze(jpeg []byte) (*Frame, error)
	Close() error
}

// FrameSource captures camera frames for the session loop.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// Session owns one continuous detection run: the detector handle, the
// lifecycle state, and the smoothing history.
//
// The frame path (ProcessFrame and the history it mutates) is single
// threaded: only the Run loop calls it. The mutex guards the lifecycle
// state and last-state snapshot, which the web layer reads concurrently.
type Session struct {
	ID  string
	cfg smoothing.Config

	detector Detector
	history  *smoothing.History

	mu     sync.RWMutex
	state  SessionState
	last   State
	misses int
	frames uint64
}

// NewSession creates an idle session. The config is normalized once here;
// an out-of-range value can never corrupt history mid-run.
func NewSession(cfg smoothing.Config, detector Detector) *Session {
	return &Session{
		ID:       uuid.NewString(),
		cfg:      cfg.Normalize(),
		detector: detector,
		history:  smoothing.NewHistory(),
	}
}

// Config returns the session's normalized smoothing configuration.
func (s *Session) Config() smoothing.Config {
	return s.cfg
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Last returns the most recent display state.
func (s *Session) Last() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Frames returns how many frames this session has processed.
func (s *Session) Frames() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frames
}

// Start moves the session to Active. History is deliberately NOT cleared:
// a stop/start cycle restarts warm, with the previous run's observations
// aging out through normal eviction. See DESIGN.md.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateActive {
		return ErrAlreadyActive
	}
	s.state = StateActive
	log.Info("session started", "session", s.ID, "window", s.cfg.WindowSize, "min_confidence", s.cfg.MinConfidence)
	return nil
}

// Stop moves the session back to Idle.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrNotActive
	}
	s.state = StateIdle
	log.Info("session stopped", "session", s.ID, "frames", s.frames)
	return nil
}

// ProcessFrame runs the per-frame pipeline on one detector result and
// returns the state to display.
//
// A frame with no face yields the empty state and leaves history alone: a
// transient dropout must not erase accumulated stability. Otherwise the
// frame's observations are filtered by MinConfidence (emotion and gender;
// age has no confidence and enters whenever the detector produced one),
// pushed into their windows, and all three smoothed values are recomputed
// from the window snapshots. Absent attributes skip their window for the
// frame.
func (s *Session) ProcessFrame(frame *Frame) State {
	if frame == nil || frame.Face == nil {
		st := State{}
		s.storeState(st)
		return st
	}

	face := frame.Face

	if best, ok := bestEmotion(face.Emotions); ok && best.Confidence >= s.cfg.MinConfidence {
		s.history.PushEmotion(smoothing.EmotionSample{
			Label:      best.Label,
			Confidence: best.Confidence,
		}, s.cfg.WindowSize)
	}

	if face.Gender != nil && face.Gender.Confidence >= s.cfg.MinConfidence {
		s.history.PushGender(smoothing.GenderSample{
			Label:      face.Gender.Label,
			Confidence: face.Gender.Confidence,
		}, s.cfg.WindowSize)
	}

	if face.Age != nil {
		s.history.PushAge(*face.Age, s.cfg.WindowSize)
	}

	st := State{
		FaceDetected: true,
		Confidence:   percent(face.Confidence),
		Quality:      percent(face.Quality),
		Pose:         poseForDisplay(face.Pose),
		Box:          face.Box,
		Gender:       smoothing.SmoothGender(s.history.Genders),
		Emotion:      smoothing.SmoothEmotion(s.history.Emotions),
	}

	if age, ok := smoothing.SmoothAge(s.history.Ages); ok {
		st.Age = &age
	}
	if st.Emotion != nil {
		st.EmotionName = smoothing.EmotionDisplayName(st.Emotion.Label)
	}
	if face.Distance != nil {
		d := round2(*face.Distance)
		st.Distance = &d
	}
	if face.Realness != nil {
		st.Realness = percent(*face.Realness)
	}
	if face.Liveness != nil {
		st.Liveness = percent(*face.Liveness)
	}

	s.storeState(st)
	return st
}

// bestEmotion picks the highest-confidence candidate. The scan keeps the
// first entry on ties, matching the detector's output order.
func bestEmotion(candidates []EmotionCandidate) (EmotionCandidate, bool) {
	if len(candidates) == 0 {
		return EmotionCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best, true
}

func (s *Session) storeState(st State) {
	s.mu.Lock()
	s.last = st
	s.frames++
	if st.FaceDetected {
		s.misses = 0
	} else {
		s.misses++
	}
	s.mu.Unlock()
}

// ConsecutiveMisses returns how many frames in a row produced no face.
func (s *Session) ConsecutiveMisses() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.misses
}

// Run drives the session: one capture+detect+process cycle per tick until
// the context is cancelled. While the session is stopped the loop idles,
// skipping capture entirely; a later Start resumes it with history intact.
// onState is invoked with every display state; pass nil if the caller only
// polls Last.
//
// Capture or detection failures count as missed frames; the loop keeps
// going and history is untouched, same as a frame with no face.
func (s *Session) Run(ctx context.Context, source FrameSource, interval time.Duration, onState func(State)) error {
	if err := s.Start(); err != nil {
		return err
	}
	defer func() {
		if s.State() == StateActive {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("frame loop started", "session", s.ID, "interval", interval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if s.State() != StateActive {
				continue
			}

			st, err := s.step(source)
			if err != nil {
				log.Debug("frame skipped", "session", s.ID, "error", err)
				continue
			}
			if onState != nil {
				onState(st)
			}
		}
	}
}

// step runs one frame through capture and detection. Detector errors are
// reported to the caller after recording a miss.
func (s *Session) step(source FrameSource) (State, error) {
	jpeg, err := source.CaptureJPEG()
	if err != nil {
		s.storeState(State{})
		return State{}, err
	}

	frame, err := s.detector.Analyze(jpeg)
	if err != nil {
		s.storeState(State{})
		return State{}, err
	}

	st := s.ProcessFrame(frame)

	if !st.FaceDetected {
		if misses := s.ConsecutiveMisses(); misses == 5 {
			log.Debug("face lost", "session", s.ID, "misses", misses)
		}
	}

	return st, nil
}
