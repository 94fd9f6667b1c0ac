package identity

import (
	"fmt"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
)

// Generator produces client identifiers that are distinct from every
// identifier it has produced before in this process.
type Generator interface {
	NewID() string
}

// ULIDGenerator issues ULIDs: a millisecond timestamp followed by
// monotonic entropy, so ids minted in the same millisecond still differ
// and sort in creation order.
type ULIDGenerator struct{}

// NewULIDGenerator creates the default generator
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

func (g *ULIDGenerator) NewID() string {
	return ulid.Make().String()
}

// Sequence issues prefix-1, prefix-2, ... and is safe for concurrent use.
// Useful where deterministic ids matter, such as tests and fixtures.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence creates a counter-based generator
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1))
}
