package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHub fans recorded activities out to websocket subscribers. One instance
// runs for the whole process; Run must be started before Serve is reachable.
type FeedHub struct {
	clients    map[*feedClient]bool
	broadcast  chan []byte
	register   chan *feedClient
	unregister chan *feedClient
}

type feedClient struct {
	hub  *FeedHub
	conn *websocket.Conn
	send chan []byte
}

func NewFeedHub() *FeedHub {
	return &FeedHub{
		clients:    make(map[*feedClient]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

func (h *FeedHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall the feed.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast marshals v and queues it for every subscriber. Never blocks the
// caller: if the hub's buffer is full the event is dropped.
func (h *FeedHub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("failed to marshal feed event", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
	}
}

// Serve upgrades the request and subscribes the connection to the feed.
func (h *FeedHub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	client := &feedClient{hub: h, conn: conn, send: make(chan []byte, 32)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump discards inbound frames; the feed is one-way. It exists to notice
// closes and keep the pong handler serviced.
func (cl *feedClient) readPump() {
	defer func() {
		cl.hub.unregister <- cl
		cl.conn.Close()
	}()
	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (cl *feedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case message, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
