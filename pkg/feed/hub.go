// Package feed broadcasts changelog entries to websocket clients as they are
// written.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientBuffer   = 16
	broadcastQueue = 64
)

// ErrHubClosed is returned by Publish after Run has returned.
var ErrHubClosed = errors.New("change feed closed")

// ErrBacklog is returned by Publish when the broadcast queue is full.
var ErrBacklog = errors.New("change feed backlog full")

// Message is the frame sent to clients.
type Message struct {
	Type  string               `json:"type"`
	Entry event.ChangelogEntry `json:"entry"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub mantém os clientes conectados e distribui as entradas do changelog
type Hub struct {
	upgrader websocket.Upgrader
	logger   logger.Logger

	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub cria um hub; Run precisa ser chamado para distribuir mensagens
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:     logger.OrNop(log),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastQueue),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
	}
}

// Run distribui mensagens até ctx ser cancelado. Clientes lentos são
// desconectados em vez de bloquear o hub.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("feed client connected", "clients", h.ClientCount())
		case c := <-h.unregister:
			h.drop(c)
		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*client
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				h.logger.Warn("dropping slow feed client")
				h.drop(c)
			}
		}
	}
}

// Publish implementa event.ChangelogSink
func (h *Hub) Publish(_ context.Context, entry event.ChangelogEntry) error {
	data, err := json.Marshal(Message{Type: "changelog", Entry: entry})
	if err != nil {
		return err
	}
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	select {
	case h.broadcast <- data:
		return nil
	default:
		return ErrBacklog
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP faz o upgrade da conexão e registra o cliente
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// Handler adapts the hub to gin.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) shutdown() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()
	})
}

// readPump only processes control frames; clients are not expected to send data.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
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

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
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
