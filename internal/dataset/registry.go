package dataset

import "sync"

// Ticket identifies one ingestion attempt.
type Ticket uint64

// Registry holds the active dataset. Each load takes a ticket with
// Begin; only the most recent ticket may complete, so a slow load can
// never overwrite a newer one.
type Registry struct {
	mu     sync.Mutex
	gen    Ticket
	active *Dataset
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Begin starts an ingestion and supersedes any in flight.
func (r *Registry) Begin() Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	return r.gen
}

// Complete installs ds if t is still the latest ticket.
func (r *Registry) Complete(t Ticket, ds *Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t != r.gen {
		return ErrSuperseded
	}
	r.active = ds
	return nil
}

// Set begins and completes a load in one step.
func (r *Registry) Set(ds *Dataset) {
	_ = r.Complete(r.Begin(), ds)
}

// Active returns the current dataset, or nil.
func (r *Registry) Active() *Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}
