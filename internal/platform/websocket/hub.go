// Package websocket pushes store snapshots to UI clients. Clients subscribe
// to topics ("patient", "admin") and receive the current snapshot on
// subscribe and a fresh one after every change.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const sendBuffer = 16

// Event is one message sent to a client.
type Event struct {
	Type      string          `json:"type"`
	Topic     string          `json:"topic"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ClientMessage is an inbound subscribe or unsubscribe request.
type ClientMessage struct {
	Action string   `json:"action"`
	Topics []string `json:"topics"`
}

// SnapshotFunc returns the current state published under a topic.
type SnapshotFunc func() interface{}

// Client is a single connection.
type Client struct {
	ID     string
	Topics []string
	Send   chan []byte
}

func NewClient() *Client {
	return &Client{ID: uuid.NewString(), Send: make(chan []byte, sendBuffer)}
}

// Hub tracks clients and their topic subscriptions.
type Hub struct {
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{} // topic -> clients
	all     map[*Client]struct{}
	sources map[string]SnapshotFunc
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		now:     time.Now,
		clients: make(map[string]map[*Client]struct{}),
		all:     make(map[*Client]struct{}),
		sources: make(map[string]SnapshotFunc),
	}
}

// AddSource makes topic subscribable.
func (h *Hub) AddSource(topic string, snap SnapshotFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sources[topic] = snap
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[client] = struct{}{}
}

// Unregister drops the client from every topic and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}
	for _, topic := range client.Topics {
		h.removeLocked(topic, client)
	}
	delete(h.all, client)
	close(client.Send)
}

// Subscribe adds topics to a registered client and queues the current
// snapshot of each. Unknown topics are ignored.
func (h *Hub) Subscribe(client *Client, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}
	for _, topic := range topics {
		snap, ok := h.sources[topic]
		if !ok {
			continue
		}
		if h.clients[topic] == nil {
			h.clients[topic] = make(map[*Client]struct{})
		}
		if _, dup := h.clients[topic][client]; dup {
			continue
		}
		h.clients[topic][client] = struct{}{}
		client.Topics = append(client.Topics, topic)
		if data, err := h.encode(topic, snap()); err == nil {
			h.deliver(client, data)
		}
	}
}

func (h *Hub) Unsubscribe(client *Client, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	drop := make(map[string]bool, len(topics))
	for _, t := range topics {
		drop[t] = true
		h.removeLocked(t, client)
	}
	remaining := client.Topics[:0]
	for _, t := range client.Topics {
		if !drop[t] {
			remaining = append(remaining, t)
		}
	}
	client.Topics = remaining
}

func (h *Hub) ProcessMessage(client *Client, msg ClientMessage) {
	switch msg.Action {
	case "subscribe":
		h.Subscribe(client, msg.Topics)
	case "unsubscribe":
		h.Unsubscribe(client, msg.Topics)
	default:
		h.logger.Debug().Str("client", client.ID).Str("action", msg.Action).Msg("unknown websocket action")
	}
}

// Publish sends the current snapshot of topic to its subscribers.
func (h *Hub) Publish(topic string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subscribers := h.clients[topic]
	snap, ok := h.sources[topic]
	if !ok || len(subscribers) == 0 {
		return
	}
	data, err := h.encode(topic, snap())
	if err != nil {
		return
	}
	for client := range subscribers {
		h.deliver(client, data)
	}
}

// Bridge publishes topic every time changes fires, until ctx is done or
// changes is closed.
func (h *Hub) Bridge(ctx context.Context, topic string, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			h.Publish(topic)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

func (h *Hub) TopicCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}

func (h *Hub) removeLocked(topic string, client *Client) {
	if subscribers, ok := h.clients[topic]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.clients, topic)
		}
	}
}

func (h *Hub) encode(topic string, v interface{}) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.logger.Error().Err(err).Str("topic", topic).Msg("marshal snapshot")
		return nil, err
	}
	return json.Marshal(Event{Type: "snapshot", Topic: topic, Timestamp: h.now().UTC(), Data: payload})
}

// deliver never blocks; a client that falls behind misses intermediate
// snapshots, and the next one supersedes them.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Debug().Str("client", client.ID).Msg("websocket client lagging, snapshot dropped")
	}
}

// -- Handler --

// Handler upgrades HTTP requests on /ws and pumps messages for the hub.
type Handler struct {
	hub      *Hub
	upgrader gorillawebsocket.Upgrader
}

// NewHandler accepts upgrades only from allowedOrigins. A "*" entry or an
// empty list allows every origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Handler{
		hub: hub,
		upgrader: gorillawebsocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
			},
		},
	}
}

func (wsh *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/ws", wsh.HandleConnect)
}

// HandleConnect upgrades the connection. Topics named in the "topics" query
// parameter (repeatable) are subscribed right away.
func (wsh *Handler) HandleConnect(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already wrote the error response
		return nil
	}

	client := NewClient()
	wsh.hub.Register(client)
	wsh.hub.Subscribe(client, c.QueryParams()["topics"])
	wsh.hub.logger.Debug().Str("client", client.ID).Msg("websocket connected")

	go wsh.writePump(client, ws)
	go wsh.readPump(client, ws)
	return nil
}

func (wsh *Handler) readPump(client *Client, ws *gorillawebsocket.Conn) {
	defer func() {
		wsh.hub.Unregister(client)
		ws.Close()
	}()

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		wsh.hub.ProcessMessage(client, msg)
	}
}

func (wsh *Handler) writePump(client *Client, ws *gorillawebsocket.Conn) {
	defer ws.Close()

	for message := range client.Send {
		if err := ws.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			return
		}
	}
	ws.WriteMessage(gorillawebsocket.CloseMessage, gorillawebsocket.FormatCloseMessage(gorillawebsocket.CloseNormalClosure, ""))
}
