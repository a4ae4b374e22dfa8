package jobs

import (
	"context"
	"sync"

	"gorm.io/datatypes"
)

// Handler runs one job. The payload is whatever the submitter enqueued;
// returning an error marks the run failed (and retryable up to the policy's
// attempt limit).
type Handler interface {
	Run(ctx context.Context, payload datatypes.JSON) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, payload datatypes.JSON) error

func (f HandlerFunc) Run(ctx context.Context, payload datatypes.JSON) error {
	return f(ctx, payload)
}

type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(jobType string, h Handler) {
	r.mu.Lock()
	r.handlers[jobType] = h
	r.mu.Unlock()
}

func (r *Registry) Get(jobType string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[jobType]
	return h, ok
}
