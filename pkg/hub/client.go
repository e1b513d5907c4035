package hub

import (
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/evelab/facewatch/internal/log"
)

const (
	// writeWait bounds a single write. Camera frames arrive every tick;
	// a client that cannot take one inside this window is dropped by the
	// send-queue overflow path anyway.
	writeWait = 5 * time.Second

	// pongWait is how long a silent client stays connected. Dashboard
	// clients send nothing but pongs.
	pongWait = 45 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = 30 * time.Second

	// readLimit caps inbound messages. Clients only ever pong; anything
	// larger is a misbehaving peer.
	readLimit = 1024
)

// client is one dashboard websocket connection with its send queue.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// Serve registers conn with the hub and pumps messages until the client
// disconnects. It blocks, so call it from the websocket handler.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan Message, 256),
	}
	h.register <- c

	go c.writePump()
	c.readPump()
}

// readPump discards inbound traffic. Its job is to surface disconnects
// and keep the pong deadline fresh.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			log.Debug("client gone", "hub", c.hub.name, "error", err)
			return
		}
	}
}

// writePump owns all writes to the connection: queued broadcasts plus the
// keepalive pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub dropped us; say goodbye properly
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			wsType := websocket.TextMessage
			if msg.Type == BinaryMessage {
				wsType = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(wsType, msg.Data); err != nil {
				log.Debug("client write failed", "hub", c.hub.name, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
