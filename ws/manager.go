package ws

import (
	"context"
	"encoding/json"

	"mural_backend/internal/logger"
	"mural_backend/internal/metrics"
)

// Event - сообщение живой ленты
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub держит подключенных клиентов ленты и рассылает им события.
// Все изменения clients происходят только в горутине Run.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	count      chan chan int
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		count:      make(chan chan int),
	}
}

// Run обслуживает hub до отмены ctx, затем отключает всех клиентов
func (h *Hub) Run(ctx context.Context) error {
	defer func() {
		close(h.done)
		for client := range h.clients {
			h.drop(client)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case client := <-h.register:
			h.clients[client] = struct{}{}
			metrics.LiveFeedClients.Inc()
			logger.Debug("Feed client registered", "user_id", client.UserID, "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				logger.Debug("Feed client unregistered", "user_id", client.UserID, "total", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// медленный клиент
					h.drop(client)
					logger.Warn("Feed client dropped due to full send buffer", "user_id", client.UserID)
				}
			}

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	metrics.LiveFeedClients.Dec()
}

// Broadcast реализует services.Broadcaster. Не блокирует вызывающего.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		logger.Error("Failed to encode feed event", "type", eventType, "error", err)
		return
	}

	select {
	case h.broadcast <- payload:
	case <-h.done:
	default:
		logger.Warn("Feed broadcast queue full, event dropped", "type", eventType)
	}
}

// ClientCount возвращает число подключенных клиентов (0 после остановки)
func (h *Hub) ClientCount() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
