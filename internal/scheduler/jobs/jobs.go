package jobs

import (
	"context"
	"fmt"
	"sync"
)

// Registered job handler names. Schedule entries reference handlers by these
// names, so renaming one is a schema change.
const (
	JobProcessPendingReportRequests = "reports.process_pending_report_requests"
	JobGenerateTermEndReports       = "reports.generate_term_end_reports"
	JobCleanupOldReports            = "reports.cleanup_old_reports"
)

// Handler executes one job run. The returned payload is persisted to the
// result backend alongside the run status.
type Handler func(ctx context.Context) (interface{}, error)

// Registry maps job names to handlers
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty job registry
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler under the given job name
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Resolve looks up the handler for a job name
func (r *Registry) Resolve(name string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("no handler registered for job %q", name)
	}
	return h, nil
}

// Names returns the registered job names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}
