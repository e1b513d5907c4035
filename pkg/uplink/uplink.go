// Package uplink streams analysis results to a remote collector over a
// WebSocket connection, reconnecting with backoff when the collector goes
// away. The uplink is fire-and-forget: a down collector never stalls the
// frame loop.
package uplink

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evelab/facewatch/internal/log"
	"github.com/evelab/facewatch/pkg/protocol"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second
	queueSize        = 64

	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// Uplink publishes protocol messages to a collector endpoint.
type Uplink struct {
	url    string
	nodeID string

	queue chan *protocol.Message

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	dropped   uint64
}

// New creates an uplink for the given ws:// or wss:// collector URL.
func New(url, nodeID string) *Uplink {
	return &Uplink{
		url:    url,
		nodeID: nodeID,
		queue:  make(chan *protocol.Message, queueSize),
	}
}

// Connected reports whether a collector connection is currently up.
func (u *Uplink) Connected() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.connected
}

// Dropped returns how many messages were discarded because the queue was
// full or the collector was unreachable.
func (u *Uplink) Dropped() uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.dropped
}

// Publish queues a message for delivery. Never blocks: the frame loop
// stays real-time, so messages are dropped when the queue is full.
func (u *Uplink) Publish(msg *protocol.Message) {
	select {
	case u.queue <- msg:
	default:
		u.mu.Lock()
		u.dropped++
		u.mu.Unlock()
	}
}

// Run dials the collector and drains the queue until ctx is cancelled.
// Connection failures trigger exponential backoff and a redial.
func (u *Uplink) Run(ctx context.Context) {
	backoff := minBackoff

	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := u.dial(ctx)
		if err != nil {
			log.Warn("uplink dial failed", "url", u.url, "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		backoff = minBackoff
		log.Info("uplink connected", "url", u.url, "node", u.nodeID)

		u.setConn(conn, true)
		err = u.pump(ctx, conn)
		u.setConn(nil, false)
		conn.Close()

		if ctx.Err() != nil {
			return
		}
		log.Warn("uplink disconnected", "error", err)
	}
}

func (u *Uplink) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, u.url, nil)
	return conn, err
}

func (u *Uplink) setConn(conn *websocket.Conn, connected bool) {
	u.mu.Lock()
	u.conn = conn
	u.connected = connected
	u.mu.Unlock()
}

// pump sends queued messages until the connection or the context dies.
func (u *Uplink) pump(ctx context.Context, conn *websocket.Conn) error {
	// Drain reads to detect disconnects and answer pings. Pongs go
	// through the queue so that only this goroutine writes to conn.
	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			u.handleIncoming(data)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			return err

		case msg := <-u.queue:
			data, err := msg.Bytes()
			if err != nil {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}
		}
	}
}

// handleIncoming answers collector pings; everything else is ignored.
func (u *Uplink) handleIncoming(data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		return
	}
	if msg.Type != protocol.TypePing {
		return
	}
	if pong, err := protocol.NewPongMessage(msg.Timestamp); err == nil {
		u.Publish(pong)
	}
}
