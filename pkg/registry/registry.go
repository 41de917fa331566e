// Package registry holds the process-scoped state of one verification run:
// interface name → latest contract and the expectations referencing it.
// A registry is built fresh at the start of a run and discarded at the end;
// nothing persists between runs.
package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/dkoosis/chunnel/pkg/contract"
)

// Registry supports concurrent insert-only writes keyed by interface name.
// Contract insertion for an already-registered name is last-writer-wins,
// logged as an overwrite event, never merged.
type Registry struct {
	mu      sync.RWMutex
	log     *slog.Logger
	entries map[string]*entry
}

type entry struct {
	contract     *contract.Contract
	expectations []contract.Expectation
}

// New creates an empty registry. A nil logger discards overwrite events.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{log: logger, entries: make(map[string]*entry)}
}

// PutContract registers a contract under its interface name, replacing any
// prior version. Returns the replaced version and whether a replacement
// happened.
func (r *Registry) PutContract(c *contract.Contract) (prev string, overwrote bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.getOrCreate(c.Interface.Name)
	if e.contract != nil {
		prev, overwrote = e.contract.Version, true
		r.log.Warn("contract overwritten",
			"interface", c.Interface.Name,
			"previous_version", prev,
			"version", c.Version)
	}
	e.contract = c
	return prev, overwrote
}

// AddExpectation appends an expectation under its target interface name.
// The interface need not have a contract; the matcher reports that case.
func (r *Registry) AddExpectation(e contract.Expectation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ent := r.getOrCreate(e.Interface)
	ent.expectations = append(ent.expectations, e)
}

func (r *Registry) getOrCreate(name string) *entry {
	if e, ok := r.entries[name]; ok {
		return e
	}
	e := &entry{}
	r.entries[name] = e
	return e
}

// InterfaceState is the snapshot view of one interface: its current contract
// (nil when only expectations reference it) and all expectations targeting
// it, in registration order.
type InterfaceState struct {
	Name         string
	Contract     *contract.Contract
	Expectations []contract.Expectation
}

// Snapshot is an immutable, deterministically ordered view of the registry.
// Taking a snapshot is the run's synchronization barrier: the matcher works
// only on snapshots, never on the live registry.
type Snapshot struct {
	Interfaces []InterfaceState
}

// Snapshot copies the registry state with interfaces sorted by name.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	snap := &Snapshot{Interfaces: make([]InterfaceState, 0, len(names))}
	for _, name := range names {
		e := r.entries[name]
		state := InterfaceState{Name: name, Contract: e.contract}
		state.Expectations = append(state.Expectations, e.expectations...)
		snap.Interfaces = append(snap.Interfaces, state)
	}
	return snap
}

// Unexercised lists interfaces that have a contract but no expectations:
// providers nobody's collaboration tests reference.
func (s *Snapshot) Unexercised() []string {
	var names []string
	for _, st := range s.Interfaces {
		if st.Contract != nil && len(st.Expectations) == 0 {
			names = append(names, st.Name)
		}
	}
	return names
}

// ExpectationCount totals the expectations across all interfaces.
func (s *Snapshot) ExpectationCount() int {
	n := 0
	for _, st := range s.Interfaces {
		n += len(st.Expectations)
	}
	return n
}
