package tracer

// FrameSync groups frames into sets, each spanning one full scan cycle over
// every observed region. A set completes only when all cursors wrap in the
// same frame. Lock-step chunk advancement is what guarantees the wraps land
// together; that alignment is a design invariant, not an accident.
type FrameSync struct {
	ID uint64
}

// Complete inspects this frame's wrap flags. When every region wrapped, it
// returns the id of the set that just finished and advances to the next one.
func (s *FrameSync) Complete(wraps []bool) (finished uint64, ok bool) {
	if len(wraps) == 0 {
		return 0, false
	}
	for _, w := range wraps {
		if !w {
			return 0, false
		}
	}

	finished = s.ID
	s.ID++
	return finished, true
}
