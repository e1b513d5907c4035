package detect

import (
	"sync"

	"github.com/evelab/facewatch/pkg/analysis"
)

// Mock implements the analysis.Detector interface for tests and the
// simulate command. Behavior can be customized via function fields, or a
// scripted frame sequence can be queued with Enqueue.
type Mock struct {
	// AnalyzeFunc is called when Analyze is invoked. If nil, the next
	// queued frame is returned (an empty frame once the queue drains).
	AnalyzeFunc func(jpeg []byte) (*analysis.Frame, error)

	// CloseFunc is called when Close is invoked. If nil, returns nil.
	CloseFunc func() error

	mu     sync.Mutex
	queue  []*analysis.Frame
	calls  int
	closed bool
}

// NewMock creates a mock detector with an empty frame queue.
func NewMock() *Mock {
	return &Mock{}
}

// Enqueue appends frames to the scripted sequence returned by Analyze.
func (m *Mock) Enqueue(frames ...*analysis.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, frames...)
}

// Analyze returns the next scripted frame.
func (m *Mock) Analyze(jpeg []byte) (*analysis.Frame, error) {
	m.mu.Lock()
	m.calls++
	fn := m.AnalyzeFunc
	var next *analysis.Frame
	if fn == nil {
		if len(m.queue) > 0 {
			next = m.queue[0]
			m.queue = m.queue[1:]
		} else {
			next = &analysis.Frame{}
		}
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(jpeg)
	}
	return next, nil
}

// Calls returns how many times Analyze was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close marks the mock closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	m.closed = true
	fn := m.CloseFunc
	m.mu.Unlock()

	if fn != nil {
		return fn()
	}
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
