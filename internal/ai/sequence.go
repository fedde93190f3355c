package ai

import "sync/atomic"

// Sequencer hands out monotonically increasing sequence numbers so callers
// can discard generation results that were superseded by a newer request.
// Overlapping generate/enhance calls are not cancelled; the stale response
// simply loses the IsCurrent check when it arrives.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new sequence number and marks it as the latest request.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// IsCurrent reports whether seq still identifies the latest issued request.
func (s *Sequencer) IsCurrent(seq uint64) bool {
	return s.latest.Load() == seq
}
