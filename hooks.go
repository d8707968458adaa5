package contactmerge

import (
	"sync"

	"github.com/agentstation/contactmerge/pkg/normalize"
)

// Hook function types for pipeline events
type (
	// SheetHook is called after each worksheet has been examined.
	SheetHook func(report SheetReport)

	// RejectedHook is called for every row that failed normalization.
	RejectedHook func(rejection normalize.Rejection)
)

// hooks manages event callbacks for a pipeline
type hooks struct {
	mu         sync.RWMutex
	onSheet    []SheetHook
	onRejected []RejectedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnSheet registers a callback for examined sheets
func (h *hooks) OnSheet(fn SheetHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSheet = append(h.onSheet, fn)
}

// OnRejected registers a callback for rejected rows
func (h *hooks) OnRejected(fn RejectedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRejected = append(h.onRejected, fn)
}

func (h *hooks) sheet(report SheetReport) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onSheet {
		fn(report)
	}
}

func (h *hooks) rejected(r normalize.Rejection) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onRejected {
		fn(r)
	}
}
