package pipeline

// Statistics holds the aggregate performance counters reported at the
// end of a simulation run (spec.md §4.9).
type Statistics struct {
	TotalCycles           int     `json:"totalCycles"`
	InstructionsCompleted int     `json:"instructionsCompleted"`
	IPC                   float64 `json:"ipc"`
	TotalStalls           int     `json:"totalStalls"`
	RAWHazards            int     `json:"rawHazards"`
	WARHazards            int     `json:"warHazards"`
	WAWHazards            int     `json:"wawHazards"`
	StructuralHazards     int     `json:"structuralHazards"`
	BranchMispredictions  int     `json:"branchMispredictions"`
}

// computeIPC sets IPC from InstructionsCompleted/TotalCycles, or 0 when
// TotalCycles is 0.
func (s *Statistics) computeIPC() {
	if s.TotalCycles == 0 {
		s.IPC = 0
		return
	}
	s.IPC = float64(s.InstructionsCompleted) / float64(s.TotalCycles)
}
