package domain

import (
	"fmt"
	"sync"
)

// IDSource issues unique identifiers. Implementations must be safe for
// concurrent use.
type IDSource interface {
	Next() string
}

// Sequence issues human-readable, monotonically increasing identifiers
// of the form <prefix><zero-padded counter>, e.g. "JEN000000000001".
// Identifiers are unique for the lifetime of the process; persistence
// across restarts is the caller's concern.
type Sequence struct {
	mu      sync.Mutex
	prefix  string
	digits  int
	counter uint64
}

// NewSequence creates a Sequence with the given prefix and counter width.
func NewSequence(prefix string, digits int) *Sequence {
	return &Sequence{prefix: prefix, digits: digits}
}

// Next returns the next identifier. Each caller receives a distinct
// value even under concurrent invocation.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++

	return fmt.Sprintf("%s%0*d", s.prefix, s.digits, s.counter)
}
