package pipeline

import "github.com/sarchlab/pipesim/isa"

// ExecutionUnits is a fixed-capacity pool per execution-unit kind, with
// allocate/release/reset operations (spec.md §4.3).
type ExecutionUnits struct {
	capacity  map[isa.ExecUnit]int
	available map[isa.ExecUnit]int
}

// NewExecutionUnits builds a pool from the given per-unit capacities.
func NewExecutionUnits(capacity map[isa.ExecUnit]int) *ExecutionUnits {
	cap2 := make(map[isa.ExecUnit]int, len(capacity))
	avail := make(map[isa.ExecUnit]int, len(capacity))
	for u, n := range capacity {
		cap2[u] = n
		avail[u] = n
	}
	return &ExecutionUnits{capacity: cap2, available: avail}
}

// IsAvailable reports whether unit u has free capacity. Any is the
// "not yet assigned" sentinel, not a real resource, so it is always
// available (spec.md §3). A unit with no configured capacity (other than
// Any) is never available.
func (e *ExecutionUnits) IsAvailable(u isa.ExecUnit) bool {
	if u == isa.Any {
		return true
	}
	return e.available[u] > 0
}

// Allocate reserves one slot of unit u if available, decrementing its
// counter and returning true; otherwise it returns false unchanged. Any
// always succeeds without touching the pool.
func (e *ExecutionUnits) Allocate(u isa.ExecUnit) bool {
	if u == isa.Any {
		return true
	}
	if !e.IsAvailable(u) {
		return false
	}
	e.available[u]--
	return true
}

// Release returns one slot of unit u to the pool, unless doing so would
// exceed capacity (guards against a double release). Releasing Any is a
// no-op — callers should not call it (see spec.md §9 on the Any
// sentinel), but it is safe if they do.
func (e *ExecutionUnits) Release(u isa.ExecUnit) {
	if u == isa.Any {
		return
	}
	if e.available[u] < e.capacity[u] {
		e.available[u]++
	}
}

// Reset restores every unit to full capacity. The engine never calls it:
// NewExecutionUnits already starts every unit at full capacity, and a
// mid-run reset would free multi-cycle allocations early (spec.md §4.7
// and §9 Open Question 1).
func (e *ExecutionUnits) Reset() {
	for u, n := range e.capacity {
		e.available[u] = n
	}
}
