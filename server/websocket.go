package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tidwall/sjson"

	gurutypes "github.com/GPTx-global/guru-dataoracle/types"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	sendBufSize = 64
)

type wsClient struct {
	id        string
	eventType string
	conn      *websocket.Conn

	mtx    sync.Mutex
	send   chan []byte
	closed bool
}

// trySend queues msg without blocking. It reports false when the buffer is full.
func (c *wsClient) trySend(msg []byte) bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *wsClient) close() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub fans committed events out to WebSocket subscribers. A client may filter
// on one event type with ?type=.
type Hub struct {
	logger   log.Logger
	upgrader websocket.Upgrader
	clients  cmap.ConcurrentMap[string, *wsClient]
}

func NewHub(logger log.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: cmap.New[*wsClient](),
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	return h.clients.Count()
}

// Broadcast sends every event to the matching subscribers. Slow subscribers
// are disconnected instead of blocking the caller.
func (h *Hub) Broadcast(height int64, events []abci.Event) {
	if h.clients.Count() == 0 {
		return
	}

	for _, event := range gurutypes.NewEvents(events) {
		bz, err := json.Marshal(event)
		if err != nil {
			h.logger.Error("failed to encode event", "type", event.Type, "err", err)
			continue
		}
		if bz, err = sjson.SetBytes(bz, "height", height); err != nil {
			h.logger.Error("failed to set event height", "type", event.Type, "err", err)
			continue
		}

		for item := range h.clients.IterBuffered() {
			client := item.Val
			if client.eventType != "" && client.eventType != event.Type {
				continue
			}
			if !client.trySend(bz) {
				h.logger.Info("dropping slow websocket client", "id", client.id)
				h.remove(client)
			}
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	for item := range h.clients.IterBuffered() {
		h.remove(item.Val)
	}
}

func (h *Hub) remove(c *wsClient) {
	if h.clients.RemoveCb(c.id, func(_ string, _ *wsClient, exists bool) bool { return exists }) {
		c.close()
	}
}

// ServeWS upgrades the request and streams events until the client leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "err", err)
		return
	}

	client := &wsClient{
		id:        uuid.NewString(),
		eventType: r.URL.Query().Get("type"),
		conn:      conn,
		send:      make(chan []byte, sendBufSize),
	}
	h.clients.Set(client.id, client)
	h.logger.Debug("websocket client connected", "id", client.id, "type", client.eventType)

	go h.writePump(client)
	h.readPump(client)
}

// readPump discards client messages and detects disconnects.
func (h *Hub) readPump(c *wsClient) {
	defer h.remove(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
