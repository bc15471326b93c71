package api

import (
	"context"
	"net/http"
	"slices"
	"time"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// allChannels subscribes to every event type
	allChannels = "*"
)

// WSMessage is a message pushed to websocket clients. Events carry the event
// type as their channel and its attributes as data.
type WSMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
	Height  int64  `json:"height,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WSSubscribeMessage is sent by clients to change subscriptions
type WSSubscribeMessage struct {
	Type    string `json:"type"`    // "subscribe" or "unsubscribe"
	Channel string `json:"channel"` // an event type such as "amm_swap", or "*"
}

type subscription struct {
	client  *WebSocketClient
	channel string
	add     bool
}

// WebSocketHub fans delivered block events out to subscribed clients. Only
// the Run goroutine touches the client set and the clients' send channels.
type WebSocketHub struct {
	logger     log.Logger
	upgrader   websocket.Upgrader
	clients    map[*WebSocketClient]bool
	broadcast  chan WSMessage
	register   chan *WebSocketClient
	unregister chan *WebSocketClient
	subscribe  chan subscription
	done       chan struct{}
}

// WebSocketClient represents a WebSocket client
type WebSocketClient struct {
	hub           *WebSocketHub
	conn          *websocket.Conn
	send          chan WSMessage
	subscriptions map[string]bool
}

// NewWebSocketHub creates a hub that accepts connections from origins
func NewWebSocketHub(logger log.Logger, origins []string) *WebSocketHub {
	return &WebSocketHub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
			},
		},
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan WSMessage, 256),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
		subscribe:  make(chan subscription),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client
func (h *WebSocketHub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("websocket client connected", "clients", len(h.clients))

		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
			}
			h.logger.Debug("websocket client disconnected", "clients", len(h.clients))

		case sub := <-h.subscribe:
			if !h.clients[sub.client] {
				continue
			}
			ack := "subscribed"
			if sub.add {
				sub.client.subscriptions[sub.channel] = true
			} else {
				delete(sub.client.subscriptions, sub.channel)
				ack = "unsubscribed"
			}
			h.deliver(sub.client, WSMessage{Type: ack, Channel: sub.channel})

		case message := <-h.broadcast:
			for client := range h.clients {
				if client.subscriptions[message.Channel] || client.subscriptions[allChannels] {
					h.deliver(client, message)
				}
			}
		}
	}
}

// deliver queues message for client, dropping clients that cannot keep up
func (h *WebSocketHub) deliver(client *WebSocketClient, message WSMessage) {
	select {
	case client.send <- message:
	default:
		h.logger.Info("dropping slow websocket client")
		h.drop(client)
	}
}

func (h *WebSocketHub) drop(client *WebSocketClient) {
	delete(h.clients, client)
	close(client.send)
}

// Publish broadcasts the events of a delivered block
func (h *WebSocketHub) Publish(height int64, events sdk.Events) {
	for _, event := range events {
		attrs := make(map[string]string, len(event.Attributes))
		for _, attr := range event.Attributes {
			attrs[attr.Key] = attr.Value
		}
		message := WSMessage{Type: "event", Channel: event.Type, Height: height, Data: attrs}
		select {
		case h.broadcast <- message:
		default:
			h.logger.Error("websocket broadcast buffer full, event dropped", "type", event.Type, "height", height)
		}
	}
}

// handleWebSocket upgrades the connection and attaches it to the hub
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.wsHub.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	client := &WebSocketClient{
		hub:           s.wsHub,
		conn:          conn,
		send:          make(chan WSMessage, 256),
		subscriptions: make(map[string]bool),
	}

	select {
	case s.wsHub.register <- client:
	case <-s.wsHub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump reads subscription changes until the connection fails
func (c *WebSocketClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg WSSubscribeMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read failed", "error", err)
			}
			return
		}

		var add bool
		switch msg.Type {
		case "subscribe":
			add = true
		case "unsubscribe":
		default:
			c.hub.logger.Debug("unknown websocket message type", "type", msg.Type)
			continue
		}

		select {
		case c.hub.subscribe <- subscription{client: c, channel: msg.Channel, add: add}:
		case <-c.hub.done:
			return
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
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
