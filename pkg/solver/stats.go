package solver

import "time"

// RunStats accumulates counters across one or more calls into the
// implication cache, threaded through repeated inprocessing passes.
type RunStats struct {
	// BProp counts new unit literals discovered via hyper-binary
	// resolution (tryBoth).
	BProp uint64
	// BXProp counts new equivalences discovered via tryBoth.
	BXProp uint64
	// ZeroDepthAssigns counts literals enqueued at decision level 0.
	ZeroDepthAssigns uint64
	// CPUTime accumulates wall time spent in the owning call.
	CPUTime time.Duration
	// NumCalls counts how many times the owning operation ran.
	NumCalls uint64
}

// Clear zeroes every field in place.
func (s *RunStats) Clear() {
	*s = RunStats{}
}

// Merge adds other's counters into s in place.
func (s *RunStats) Merge(other RunStats) {
	s.BProp += other.BProp
	s.BXProp += other.BXProp
	s.ZeroDepthAssigns += other.ZeroDepthAssigns
	s.CPUTime += other.CPUTime
	s.NumCalls += other.NumCalls
}
