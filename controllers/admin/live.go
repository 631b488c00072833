package adminController

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/rs/zerolog"
)

const writeWait = 5 * time.Second

// LiveMessage is pushed to every connected dashboard.
type LiveMessage struct {
	Type    string `json:"type"` // "content" or "order"
	Entity  string `json:"entity"`
	Action  string `json:"action"`
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// liveConn is the write side of a dashboard connection.
type liveConn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type liveClient struct {
	// websocket connections allow one writer at a time.
	mu   sync.Mutex
	conn liveConn
}

func (c *liveClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans admin activity out to the dashboards connected on /manage/live/.
// It listens to content and order events. h.mu guards the client set only
// and is never held while writing to a socket.
type Hub struct {
	mu       sync.Mutex
	clients  map[liveConn]*liveClient
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[liveConn]*liveClient),
		// Same-origin only; the route is already behind the admin gate.
		upgrader: websocket.Upgrader{},
		log:      log,
	}
}

// GET /manage/live/
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		h.add(conn)
		h.log.Debug().Int("clients", h.Clients()).Msg("🔌 dashboard connected")

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(conn)
				break
			}
		}
	}
}

func (h *Hub) add(conn liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = &liveClient{conn: conn}
}

func (h *Hub) remove(conn liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(msg LiveMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.Lock()
	clients := make([]*liveClient, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.log.Debug().Err(err).Msg("dropping dashboard")
			c.conn.Close()
			h.remove(c.conn)
		}
	}
}

func (h *Hub) ContentChanged(entity, action string, id uint, title string) {
	h.broadcast(LiveMessage{
		Type: "content", Entity: entity, Action: action, ID: id, Title: title,
		Message: entity + " \"" + title + "\" " + action,
	})
}

func (h *Hub) OrderStatusChanged(order *models.Order) {
	h.broadcast(LiveMessage{
		Type: "order", Entity: "order", Action: "status", ID: order.ID, Title: order.OrderNumber,
		Message: order.OrderNumber + " is now " + order.Status.Label(),
	})
}

// CartItemAdded is not shown on the dashboard.
func (h *Hub) CartItemAdded(bool) {}
