package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// EventType defines the SSE event name.
type EventType string

const (
	EventCatalogPage        EventType = "catalog.page"
	EventSelectionConfirmed EventType = "selection.confirmed"
	EventSelectionFailed    EventType = "selection.failed"
	EventNoticeDismiss      EventType = "notice.dismiss"
)

// Event is the payload pushed to connected dashboard clients.
type Event struct {
	Event       EventType `json:"event"`
	NoticeID    string    `json:"noticeId,omitempty"`
	ProductID   string    `json:"productId,omitempty"`
	ProductName string    `json:"productName,omitempty"`
	Message     string    `json:"message,omitempty"`
	Version     uint64    `json:"version,omitempty"`
	Page        any       `json:"page,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Client represents a connected dashboard SSE client.
type Client struct {
	ID       string
	VendorID string
	Events   chan []byte
}

// Hub manages SSE client connections and per-vendor delivery.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a new client bound to a vendor and returns it for streaming.
func (h *Hub) Register(clientID, vendorID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:       clientID,
		VendorID: vendorID,
		Events:   make(chan []byte, 64),
	}
	h.clients[clientID] = c
	log.Info().Str("client_id", clientID).Str("vendor_id", vendorID).Int("total_clients", len(h.clients)).Msg("SSE client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
		log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client disconnected")
	}
}

// SendToVendor delivers an event to every client of one vendor.
// Non-blocking: drops the message if a client buffer is full.
func (h *Hub) SendToVendor(vendorID string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if c.VendorID != vendorID {
			continue
		}
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Msg("SSE client buffer full, dropping event")
		}
	}
}

// VendorClientCount returns the number of clients connected for a vendor.
func (h *Hub) VendorClientCount(vendorID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, c := range h.clients {
		if c.VendorID == vendorID {
			n++
		}
	}
	return n
}
