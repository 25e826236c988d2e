package feed

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces product ids at parse time. Ids are session-scoped:
// two parses of the same feed yield distinct ids, and cart lines correlate
// to products by the id handed out during the parse that filled the catalog.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random product ids. This is the production
// generator.
type UUIDGenerator struct{}

// NewID returns a fresh product id.
func (UUIDGenerator) NewID() string {
	return "product-" + uuid.NewString()
}

// SequenceGenerator generates predictable ids for deterministic tests.
type SequenceGenerator struct {
	prefix string
	n      atomic.Int64
}

// NewSequenceGenerator returns a generator producing prefix-1, prefix-2, ...
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID returns the next id in the sequence.
func (g *SequenceGenerator) NewID() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}
