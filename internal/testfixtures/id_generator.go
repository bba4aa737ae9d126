package testfixtures

import (
	"fmt"
	"sync/atomic"
)

// IDGenerator yields sequential prefixed identifiers so tests can assert on
// exact ids.
type IDGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewIDGenerator constructs a generator with the given prefix, defaulting to
// "id" when blank.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.counter.Add(1))
}

// NextFunc adapts the generator for services that take an id function.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// Reset rewinds the sequence to the beginning.
func (g *IDGenerator) Reset() {
	g.counter.Store(0)
}
