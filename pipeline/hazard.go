package pipeline

import (
	"fmt"

	"github.com/sarchlab/pipesim/isa"
)

// HazardDetector reports the first hazard blocking a slot awaiting issue
// and bumps the matching counter (spec.md §4.4). It holds no state of its
// own — it reads the scoreboard and execution-unit pool it is given.
type HazardDetector struct{}

// NewHazardDetector constructs a stateless hazard detector.
func NewHazardDetector() *HazardDetector {
	return &HazardDetector{}
}

// Check evaluates instruction inst's slot for a RAW or structural hazard
// at the given cycle, in that order. On a hazard, it marks the slot
// stalled with a reason, increments the relevant counter on stats, and
// returns false (the slot stays in DECODE). On no hazard, it clears the
// stall flag and returns true (the slot may advance to ISSUE).
func (h *HazardDetector) Check(inst isa.Instruction, slot *Slot, sb *Scoreboard, units *ExecutionUnits, cycle int, stats *Statistics) bool {
	if sb.IsBusy(inst.Src1, cycle) {
		return h.stall(slot, stats, &stats.RAWHazards, fmt.Sprintf(
			"RAW on R%d (writer: I%d)", inst.Src1, sb.WriterOf(inst.Src1)))
	}

	if sb.IsBusy(inst.Src2, cycle) {
		return h.stall(slot, stats, &stats.RAWHazards, fmt.Sprintf(
			"RAW on R%d (writer: I%d)", inst.Src2, sb.WriterOf(inst.Src2)))
	}

	required := isa.UnitOf(inst.Op)
	if !units.IsAvailable(required) {
		return h.stall(slot, stats, &stats.StructuralHazards, fmt.Sprintf(
			"Structural - %s busy", required))
	}

	slot.Stalled = false
	slot.StallReason = ""
	return true
}

func (h *HazardDetector) stall(slot *Slot, stats *Statistics, counter *int, reason string) bool {
	slot.Stalled = true
	slot.StallReason = reason
	*counter++
	stats.TotalStalls++
	return false
}
