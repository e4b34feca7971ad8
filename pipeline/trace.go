package pipeline

// StallEntry records one stalled instruction in a cycle's snapshot.
type StallEntry struct {
	Instruction string `json:"instruction"`
	Reason      string `json:"reason"`
}

// Snapshot is the immutable per-cycle record emitted by the
// TraceRecorder (spec.md §4.8). Stage lists are in slot index order,
// which is program order; IDLE and COMPLETE slots never appear.
type Snapshot struct {
	Cycle  int                 `json:"cycle"`
	Stages map[string][]string `json:"stages"`
	Stalls []StallEntry        `json:"stalls"`
}

// traceableStages lists, in display order, the stages a snapshot reports.
var traceableStages = []Stage{FETCH, DECODE, ISSUE, EXECUTE, WRITEBACK}

// TraceRecorder captures one Snapshot per cycle.
type TraceRecorder struct {
	cycles []Snapshot
}

// NewTraceRecorder returns an empty recorder.
func NewTraceRecorder() *TraceRecorder {
	return &TraceRecorder{}
}

// Capture builds and appends the snapshot for the given cycle from the
// current slot/instruction state. slots[i] must be the state of
// instruction i (origins[i]).
func (t *TraceRecorder) Capture(cycle int, origins []string, slots []*Slot) {
	stages := make(map[string][]string, len(traceableStages))
	for _, st := range traceableStages {
		stages[st.String()] = []string{}
	}

	var stalls []StallEntry
	for i, slot := range slots {
		if slot.Stage != IDLE && slot.Stage != COMPLETE {
			stages[slot.Stage.String()] = append(stages[slot.Stage.String()], origins[i])
		}
		if slot.Stalled {
			stalls = append(stalls, StallEntry{Instruction: origins[i], Reason: slot.StallReason})
		}
	}

	t.cycles = append(t.cycles, Snapshot{Cycle: cycle, Stages: stages, Stalls: stalls})
}

// Snapshots returns every captured snapshot in cycle order.
func (t *TraceRecorder) Snapshots() []Snapshot {
	return t.cycles
}
