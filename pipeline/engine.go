package pipeline

import (
	"errors"

	"github.com/sarchlab/pipesim/isa"
)

// MaxCycles is the hard safety cap on simulated cycles (spec.md §4.7).
const MaxCycles = 500

// ErrEmptyProgram is returned by Run when given zero instructions
// (spec.md §7's InputEmpty).
var ErrEmptyProgram = errors.New("pipeline: instruction list is empty")

// Result is the structured output of a simulation run (spec.md §6): the
// final statistics and the ordered per-cycle trace. The core has no
// opinion on how a caller serializes or transports this value.
type Result struct {
	Stats  Statistics `json:"stats"`
	Cycles []Snapshot `json:"cycles"`
}

// Engine orchestrates the per-cycle stage advance described in spec.md
// §4.7. It is logically single-threaded: Run is one blocking call that
// walks every cycle sequentially and returns the complete result
// (spec.md §5).
type Engine struct {
	config *isa.Config

	instructions []isa.Instruction
	slots        []*Slot

	scoreboard *Scoreboard
	units      *ExecutionUnits
	hazards    *HazardDetector
	trace      *TraceRecorder

	cycle     int
	completed int
	stats     Statistics
}

// NewEngine constructs an engine configured with cfg. A nil cfg uses
// isa.DefaultConfig().
func NewEngine(cfg *isa.Config) *Engine {
	if cfg == nil {
		cfg = isa.DefaultConfig()
	}

	capacity := map[isa.ExecUnit]int{
		isa.ALU:    cfg.Capacity(isa.ALU),
		isa.FPU:    cfg.Capacity(isa.FPU),
		isa.MEM:    cfg.Capacity(isa.MEM),
		isa.Branch: cfg.Capacity(isa.Branch),
	}

	return &Engine{
		config:     cfg,
		scoreboard: NewScoreboard(),
		units:      NewExecutionUnits(capacity),
		hazards:    NewHazardDetector(),
		trace:      NewTraceRecorder(),
	}
}

// Run simulates instructions to completion or until MaxCycles is reached,
// whichever comes first, and returns the full Result.
func (e *Engine) Run(instructions []isa.Instruction) (Result, error) {
	if len(instructions) == 0 {
		return Result{}, ErrEmptyProgram
	}

	e.instructions = instructions
	e.slots = make([]*Slot, len(instructions))
	for i := range e.slots {
		e.slots[i] = NewSlot()
	}

	origins := make([]string, len(instructions))
	for i, inst := range instructions {
		origins[i] = inst.Origin
	}

	for e.completed < len(e.instructions) && e.cycle < MaxCycles {
		e.cycle++

		e.writebackPass()
		e.executePass()
		e.issuePass()
		e.decodePass()
		e.fetchPass()
		e.accountingPass()

		e.trace.Capture(e.cycle, origins, e.slots)
	}

	e.stats.TotalCycles = e.cycle
	e.stats.InstructionsCompleted = e.completed
	e.stats.computeIPC()

	return Result{Stats: e.stats, Cycles: e.trace.Snapshots()}, nil
}

// writebackPass processes every slot currently in WRITEBACK (spec.md
// §4.6).
func (e *Engine) writebackPass() {
	for i, slot := range e.slots {
		if slot.Stage != WRITEBACK {
			continue
		}

		inst := e.instructions[i]
		e.scoreboard.ClearBusy(inst.Dest)
		if slot.Unit != isa.Any {
			e.units.Release(slot.Unit)
		}

		slot.Stage = COMPLETE
		slot.CompleteCycle = e.cycle
		e.completed++
	}
}

// executePass advances every EXECUTE slot's cycle counter, transitioning
// to WRITEBACK once its latency is satisfied (spec.md §4.6).
func (e *Engine) executePass() {
	for i, slot := range e.slots {
		if slot.Stage != EXECUTE {
			continue
		}

		slot.CyclesInStage++
		if slot.CyclesInStage >= e.config.LatencyOf(e.instructions[i].Op) {
			slot.Stage = WRITEBACK
			slot.CyclesInStage = 0
		}
	}
}

// issuePass allocates an execution unit, in program order, to every slot
// awaiting issue (spec.md §4.5).
func (e *Engine) issuePass() {
	for i, slot := range e.slots {
		if slot.Stage != ISSUE {
			continue
		}

		inst := e.instructions[i]
		unit := isa.UnitOf(inst.Op)
		if !e.units.Allocate(unit) {
			continue
		}

		slot.Stage = EXECUTE
		slot.Unit = unit
		slot.CyclesInStage = 0
		slot.IssueCycle = e.cycle
		e.scoreboard.MarkBusy(inst.Dest, inst.ID, e.cycle+e.config.LatencyOf(inst.Op))
	}
}

// decodePass runs hazard detection, in program order, for every slot in
// DECODE, promoting a hazard-free slot to ISSUE (spec.md §4.4-§4.5).
func (e *Engine) decodePass() {
	for i, slot := range e.slots {
		if slot.Stage != DECODE {
			continue
		}

		if e.hazards.Check(e.instructions[i], slot, e.scoreboard, e.units, e.cycle, &e.stats) {
			slot.Stage = ISSUE
		}
	}
}

// fetchPass advances every FETCH slot to DECODE and admits every IDLE
// slot into FETCH (spec.md §4.7 step 6).
func (e *Engine) fetchPass() {
	for _, slot := range e.slots {
		switch slot.Stage {
		case FETCH:
			slot.Stage = DECODE
			slot.CyclesInStage = 0
		case IDLE:
			slot.Stage = FETCH
		}
	}
}

// accountingPass increments TotalCycles for every slot in flight (spec.md
// §4.7 step 7).
func (e *Engine) accountingPass() {
	for _, slot := range e.slots {
		if slot.Stage != IDLE && slot.Stage != COMPLETE {
			slot.TotalCycles++
		}
	}
}
