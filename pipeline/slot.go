// Package pipeline implements the cycle-accurate engine: pipeline slots,
// the register scoreboard, the execution-unit pool, hazard detection, and
// the per-cycle trace recorder described in spec.md §3-§4.
package pipeline

import "github.com/sarchlab/pipesim/isa"

// Stage is a pipeline stage a slot occupies for one or more whole cycles.
// Stage values are ordered; a slot's Stage must never regress (spec.md
// invariant I1).
type Stage int

const (
	IDLE Stage = iota
	FETCH
	DECODE
	ISSUE
	EXECUTE
	WRITEBACK
	COMPLETE
)

var stageNames = [...]string{
	IDLE: "IDLE", FETCH: "FETCH", DECODE: "DECODE", ISSUE: "ISSUE",
	EXECUTE: "EXECUTE", WRITEBACK: "WRITEBACK", COMPLETE: "COMPLETE",
}

// String returns the stage's canonical name, used in trace snapshots.
func (s Stage) String() string {
	if int(s) < 0 || int(s) >= len(stageNames) {
		return "UNKNOWN"
	}
	return stageNames[s]
}

// Slot is the mutable per-instruction state the engine advances each
// cycle. A Slot at index i is permanently bound to instructions[i] for
// the life of a simulation run (spec.md §3).
type Slot struct {
	// Stage is the slot's current pipeline stage.
	Stage Stage
	// Unit is the execution unit allocated to this slot in ISSUE. It is
	// isa.Any until issue succeeds, and stays isa.Any for an instruction
	// (e.g. NOP) whose required unit is isa.Any.
	Unit isa.ExecUnit
	// CyclesInStage counts whole cycles spent in the current EXECUTE
	// occupancy; it resets to 0 on every stage transition.
	CyclesInStage int
	// TotalCycles is the lifetime cycle count: incremented once per
	// cycle for every cycle the slot spends outside IDLE and COMPLETE.
	TotalCycles int
	// Stalled is true while the slot is held in DECODE by a hazard.
	Stalled bool
	// StallReason describes the most recent hazard, or "" when not
	// stalled.
	StallReason string
	// IssueCycle is the cycle the slot entered EXECUTE, or -1 before
	// issue.
	IssueCycle int
	// CompleteCycle is the cycle the slot entered COMPLETE, or -1 before
	// completion (including if MAX_CYCLES is reached first).
	CompleteCycle int
}

// NewSlot returns a freshly constructed slot in IDLE, per spec.md §3's
// lifecycle: "slots are created once in state IDLE when the instruction
// list is accepted".
func NewSlot() *Slot {
	return &Slot{
		Stage:         IDLE,
		Unit:          isa.Any,
		IssueCycle:    -1,
		CompleteCycle: -1,
	}
}
