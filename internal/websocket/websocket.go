package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abrezinsky/cubeplan/internal/logger"
	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/services"
)

// Message types sent to clients
const (
	MessagePlanUpdated        = "plan_updated"
	MessageCompetitionDeleted = "competition_deleted"
)

// CompetitionQueryParam selects the competition a client subscribes to
const CompetitionQueryParam = "competition"

const (
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	writeWait      = 10 * time.Second
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the API routes
	},
}

// envelope is a message addressed to the subscribers of one competition.
// An empty competitionID reaches every client.
type envelope struct {
	competitionID string
	message       models.WSMessage
}

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	log        logger.Logger
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	plans      services.PlanServicer
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub           *Hub
	conn          *websocket.Conn
	send          chan models.WSMessage
	competitionID string
}

// New creates a new Hub. plans provides the snapshot sent to a client when
// it subscribes; it may be nil.
func New(log logger.Logger, plans services.PlanServicer) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		plans:      plans,
	}
}

// Start begins the hub's main loop in a goroutine
func (h *Hub) Start() {
	go h.run()
}

// run handles client registration/unregistration and message broadcasting
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("Client connected", "competition", client.competitionID, "total_clients", total)

			if client.competitionID != "" && h.plans != nil {
				go h.sendSnapshot(client)
			}

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("Client disconnected", "total_clients", total)

		case env := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				if !client.subscribed(env.competitionID) {
					continue
				}
				select {
				case client.send <- env.message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// sendSnapshot pushes the current plan of the client's competition
func (h *Hub) sendSnapshot(client *Client) {
	plan, err := h.plans.Preview(context.Background(), client.competitionID)
	if err != nil {
		h.log.Debug("No plan snapshot for subscriber", "competition", client.competitionID, "error", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- models.WSMessage{Type: MessagePlanUpdated, Payload: plan}:
	default:
	}
}

// BroadcastMessage sends a message to the subscribers of competitionID, or
// to every client when competitionID is empty
func (h *Hub) BroadcastMessage(competitionID, msgType string, payload interface{}) {
	h.broadcast <- envelope{
		competitionID: competitionID,
		message:       models.WSMessage{Type: msgType, Payload: payload},
	}
}

// BroadcastPlan implements services.Broadcaster
func (h *Hub) BroadcastPlan(competitionID string, plan *services.Plan) {
	h.BroadcastMessage(competitionID, MessagePlanUpdated, plan)
}

// BroadcastDeleted implements services.Broadcaster
func (h *Hub) BroadcastDeleted(competitionID string) {
	h.BroadcastMessage(competitionID, MessageCompetitionDeleted, map[string]string{"id": competitionID})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// subscribed reports whether the client receives messages for competitionID
func (c *Client) subscribed(competitionID string) bool {
	return competitionID == "" || c.competitionID == "" || c.competitionID == competitionID
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("WebSocket error", "error", err)
			}
			break
		}

		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			c.hub.log.Debug("Received message", "type", msg.Type)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
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

// ServeWs handles websocket requests from clients. The competition query
// parameter limits the client to one competition's updates.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		hub:           h,
		conn:          conn,
		send:          make(chan models.WSMessage, sendBufferSize),
		competitionID: r.URL.Query().Get(CompetitionQueryParam),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// ServeHTTP implements http.Handler
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.ServeWs(w, r)
}
