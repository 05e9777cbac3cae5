package checkout

import (
	"context"
	"sync"
)

// ToastCollector gathers the notifications of one request so they can be
// returned in the response.
type ToastCollector struct {
	mu     sync.Mutex
	toasts []Toast
}

func (c *ToastCollector) Dispatch(_ context.Context, t Toast) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = append(c.toasts, t)
}

// Toasts returns what was dispatched, in order.
func (c *ToastCollector) Toasts() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Toast{}, c.toasts...)
}
