package server

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rustyeddy/supertrader/journal"
	"github.com/rustyeddy/supertrader/sim"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

// Hub pushes engine events to websocket clients. It implements
// sim.Listener. Tick messages are throttled to one per interval; trades
// and game over are always sent.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	interval time.Duration
	lastPush time.Time
	log      *slog.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// NewHub creates a hub. An interval of zero pushes every tick.
func NewHub(interval time.Duration, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[*client]struct{}),
		interval: interval,
		log:      log,
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) OnTick(s sim.Snapshot) {
	h.mu.Lock()
	if h.interval > 0 && !h.lastPush.IsZero() && time.Since(h.lastPush) < h.interval {
		h.mu.Unlock()
		return
	}
	h.lastPush = time.Now()
	h.mu.Unlock()

	v := NewSessionView(s)
	h.broadcast(Message{Type: "tick", Session: &v})
}

func (h *Hub) OnTrade(t journal.TradeRecord) {
	h.broadcast(Message{Type: "trade", Trade: &t})
}

func (h *Hub) OnGameOver(s sim.Snapshot) {
	v := NewSessionView(s)
	h.broadcast(Message{Type: "game_over", Session: &v})
}

func (h *Hub) broadcast(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		h.log.Error("encode websocket message", "type", m.Type, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow client; drop it rather than stall the engine.
			h.log.Warn("websocket client too slow, disconnecting", "remote", c.conn.RemoteAddr().String())
			delete(h.clients, c)
			c.close()
		}
	}
}

// Serve registers conn and blocks until it disconnects. Each text message
// the client sends is passed to onMessage.
func (h *Hub) Serve(conn *websocket.Conn, onMessage func([]byte)) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.Debug("websocket client connected", "remote", conn.RemoteAddr().String())

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(c)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if onMessage != nil {
			onMessage(data)
		}
	}

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
	<-writerDone
	conn.Close()
	h.log.Debug("websocket client disconnected", "remote", conn.RemoteAddr().String())
}

func (h *Hub) writeLoop(c *client) {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// Unblock the read loop in Serve.
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// sendTo queues a message for the client on conn, if it is still registered.
func (h *Hub) sendTo(conn *websocket.Conn, m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.conn == conn {
			select {
			case c.send <- data:
			default:
			}
			return
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}
