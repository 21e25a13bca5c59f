// Package outcome implements the weighted random draw for a game's outcome
// table. The generator is pure with respect to ledger state: it consumes only
// its injected random source, so draws are deterministic under a fixed seed.
package outcome

import (
	"sync"

	"github.com/berrybet/wagerd/internal/domain"
)

// RandomSource supplies uniform random integers in [0, n). math/rand's
// *rand.Rand satisfies it directly.
type RandomSource interface {
	Int63n(n int64) int64
}

// Generator draws outcome classes with long-run frequency weight/totalWeight.
type Generator struct {
	mu     sync.Mutex
	table  domain.OutcomeTable
	total  int64
	source RandomSource
}

// NewGenerator validates the table and returns a generator. Configuration
// errors surface here, never at draw time.
func NewGenerator(table domain.OutcomeTable, source RandomSource) (*Generator, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	return &Generator{
		table:  table,
		total:  table.TotalWeight(),
		source: source,
	}, nil
}

// Draw selects one outcome class: a uniform r in [0, totalWeight) walks the
// ordered classes accumulating weights until the cumulative weight exceeds r.
// Safe for concurrent use; rand.Rand is not, so the source is serialized.
func (g *Generator) Draw() domain.OutcomeClass {
	g.mu.Lock()
	r := g.source.Int63n(g.total)
	g.mu.Unlock()

	var cumulative int64
	for _, c := range g.table.Classes {
		cumulative += c.Weight
		if r < cumulative {
			return c
		}
	}

	// Unreachable: weights sum to total and r < total.
	return g.table.Classes[len(g.table.Classes)-1]
}

// Table returns the generator's outcome table.
func (g *Generator) Table() domain.OutcomeTable {
	return g.table
}
