package graph

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"trendline/dto"
	"trendline/utils"
)

// StockEvent is the payload pushed to subscribers when a product's stock
// level is overwritten
type StockEvent struct {
	Type    string         `json:"type"`
	Product dto.ProductDTO `json:"product"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans stock events out to connected websocket subscribers. A slow
// subscriber is dropped rather than blocking the rest.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan StockEvent
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan StockEvent)}
}

// PublishStock broadcasts a stock change to every subscriber
func (h *Hub) PublishStock(product dto.ProductDTO) {
	event := StockEvent{Type: "stock-change", Product: product}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		select {
		case ch <- event:
		default:
			utils.LogDebug("Hub: dropping slow subscriber")
			close(ch)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) chan StockEvent {
	ch := make(chan StockEvent, 16)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[conn]; ok {
		close(ch)
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	conn.Close()
}

// Subscribe upgrades the request to a websocket and streams stock events
// until the client disconnects
func (h *Hub) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogError("Subscribe: upgrade failed: %v", err)
		return
	}
	utils.LogInfo("Subscribe: client connected %s", conn.RemoteAddr())

	ch := h.add(conn)

	// Reader loop: only watches for the client closing the connection
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(conn)
				return
			}
		}
	}()

	for event := range ch {
		if err := conn.WriteJSON(event); err != nil {
			utils.LogDebug("Subscribe: write failed, dropping client: %v", err)
			h.remove(conn)
			return
		}
	}
}
