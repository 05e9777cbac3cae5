package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/order"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/domain/shared/valueobject"
	"github.com/pupuk/storefront/internal/interfaces/http/dto"
	"github.com/pupuk/storefront/internal/interfaces/http/middleware"
)

// NewOrderTitle heads every new-order notification.
const NewOrderTitle = "Pesanan Baru!"

// SSEMessage represents a message to be sent to SSE clients
type SSEMessage struct {
	Event string
	Data  string
	ID    string
}

// OrderNotification is the payload of an order_placed event
// @Description Payload of an order_placed event
type OrderNotification struct {
	Title          string `json:"title" example:"Pesanan Baru!"`
	Body           string `json:"body" example:"Budi Santoso - Rp 150.000"`
	OrderID        string `json:"order_id" example:"3f1c9a52-7d4e-4b8a-9c21-5e6f7a8b9c0d"`
	CustomerName   string `json:"customer_name" example:"Budi Santoso"`
	TotalFormatted string `json:"total_formatted" example:"Rp 150.000"`
}

type sseClient struct {
	id   string
	ch   chan SSEMessage
	done chan struct{}
}

// OrderStreamHandler pushes new-order notifications to connected admin
// dashboards. It subscribes to OrderPlaced on the event bus.
type OrderStreamHandler struct {
	BaseHandler
	logger     *zap.Logger
	heartbeat  time.Duration
	maxClients int

	mu      sync.Mutex
	clients map[string]*sseClient
}

// OrderStreamOption configures an OrderStreamHandler.
type OrderStreamOption func(*OrderStreamHandler)

// WithStreamHeartbeat sets the heartbeat interval
func WithStreamHeartbeat(interval time.Duration) OrderStreamOption {
	return func(h *OrderStreamHandler) { h.heartbeat = interval }
}

// WithStreamMaxClients sets the maximum number of concurrent clients
func WithStreamMaxClients(n int) OrderStreamOption {
	return func(h *OrderStreamHandler) { h.maxClients = n }
}

// NewOrderStreamHandler creates a new OrderStreamHandler
func NewOrderStreamHandler(logger *zap.Logger, opts ...OrderStreamOption) *OrderStreamHandler {
	h := &OrderStreamHandler{
		logger:     logger,
		heartbeat:  30 * time.Second,
		maxClients: 100,
		clients:    make(map[string]*sseClient),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes implements shared.EventHandler.
func (h *OrderStreamHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced}
}

// Handle implements shared.EventHandler.
func (h *OrderStreamHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		return nil
	}
	total := valueobject.NewRupiah(placed.TotalAmount).Format()
	data, err := json.Marshal(OrderNotification{
		Title:          NewOrderTitle,
		Body:           fmt.Sprintf("%s - %s", placed.CustomerName, total),
		OrderID:        placed.AggregateID().String(),
		CustomerName:   placed.CustomerName,
		TotalFormatted: total,
	})
	if err != nil {
		return err
	}
	h.broadcast(SSEMessage{Event: "order_placed", Data: string(data), ID: placed.EventID().String()})
	return nil
}

// Run sends heartbeats until ctx is done, then disconnects every client.
func (h *OrderStreamHandler) Run(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.broadcast(SSEMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
		}
	}
}

func (h *OrderStreamHandler) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		close(client.done)
		delete(h.clients, id)
	}
}

// broadcast never blocks: a client whose buffer is full misses the message.
func (h *OrderStreamHandler) broadcast(msg SSEMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.clients {
		select {
		case client.ch <- msg:
		default:
			h.logger.Warn("Client channel full, dropping message",
				zap.String("client_id", client.id), zap.String("event", msg.Event))
		}
	}
}

func (h *OrderStreamHandler) register() (*sseClient, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.maxClients > 0 && len(h.clients) >= h.maxClients {
		return nil, false
	}
	client := &sseClient{
		id:   uuid.NewString(),
		ch:   make(chan SSEMessage, 16),
		done: make(chan struct{}),
	}
	h.clients[client.id] = client
	return client, true
}

func (h *OrderStreamHandler) unregister(client *sseClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.id]; ok {
		delete(h.clients, client.id)
		close(client.done)
	}
}

// ClientCount returns the number of connected clients
func (h *OrderStreamHandler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stream godoc
// @Summary      New order stream
// @Description  Server-sent events: "connected" once, then "order_placed" per new order and a periodic heartbeat. The token may be passed as a query parameter.
// @Tags         admin-orders
// @Produce      text/event-stream
// @Param        token query string false "Access token for clients that cannot set headers"
// @Success      200 {string} string "event stream"
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders/stream [get]
func (h *OrderStreamHandler) Stream(c *gin.Context) {
	client, ok := h.register()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
			"ERR_MAX_CONNECTIONS", "Maximum number of stream connections reached", middleware.GetRequestID(c)))
		return
	}
	defer h.unregister(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	h.logger.Info("Order stream client connected", zap.String("client_id", client.id))
	writeSSE(c.Writer, SSEMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"client_id":%q}`, client.id),
	})
	c.Writer.Flush()

	reqCtx := c.Request.Context()
	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("Order stream client disconnected", zap.String("client_id", client.id))
			return
		case <-client.done:
			return
		case msg := <-client.ch:
			writeSSE(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

func writeSSE(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}
