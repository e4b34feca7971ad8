package pipeline

import "github.com/sarchlab/pipesim/isa"

// regInfo is a scoreboard entry for a single register (spec.md §3's
// RegInfo).
type regInfo struct {
	busy       bool
	writerID   int
	readyCycle int
}

// Scoreboard is the register reservation table: for each register it
// tracks the id of the last in-flight writer and the cycle its result
// becomes visible. An out-of-range register index is always treated as
// "not busy, no writer" — this is how an unused (-1) operand is modeled
// uniformly (spec.md §4.2).
type Scoreboard struct {
	regs [isa.NREG]regInfo
}

// NewScoreboard returns a scoreboard with every register free.
func NewScoreboard() *Scoreboard {
	sb := &Scoreboard{}
	for i := range sb.regs {
		sb.regs[i] = regInfo{writerID: -1, readyCycle: -1}
	}
	return sb
}

func (sb *Scoreboard) valid(r int) bool {
	return r >= 0 && r < isa.NREG
}

// IsBusy reports whether register r has a pending write not yet visible
// at currentCycle. The comparison is strict: a write whose ready cycle
// equals currentCycle is already visible this cycle (spec.md §4.2, §9).
func (sb *Scoreboard) IsBusy(r, currentCycle int) bool {
	if !sb.valid(r) {
		return false
	}
	entry := sb.regs[r]
	return entry.busy && entry.readyCycle > currentCycle
}

// MarkBusy unconditionally reserves register r for writerID, becoming
// visible at readyCycle. A no-op for an out-of-range r.
func (sb *Scoreboard) MarkBusy(r, writerID, readyCycle int) {
	if !sb.valid(r) {
		return
	}
	sb.regs[r] = regInfo{busy: true, writerID: writerID, readyCycle: readyCycle}
}

// ClearBusy releases register r's reservation. A no-op for an
// out-of-range r.
func (sb *Scoreboard) ClearBusy(r int) {
	if !sb.valid(r) {
		return
	}
	sb.regs[r].busy = false
}

// WriterOf returns the id of register r's pending writer, or -1 if none
// or r is out of range.
func (sb *Scoreboard) WriterOf(r int) int {
	if !sb.valid(r) {
		return -1
	}
	return sb.regs[r].writerID
}
