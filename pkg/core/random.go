package core

import "math"

// LCG is the 32-bit linear congruential generator used for procedural content
// (building heights, light placement, rain streaks). Arithmetic wraps at 2^32.
type LCG struct {
	state uint32
}

// NewLCG creates a generator with the given seed
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Step advances a raw LCG state by one iteration
func Step(state uint32) uint32 {
	return state*1664525 + 1013904223
}

// Next advances the generator and returns the new state
func (g *LCG) Next() uint32 {
	g.state = Step(g.state)
	return g.state
}

// Float01 advances the generator and returns the state mapped to [0, 1]
func (g *LCG) Float01() float64 {
	return float64(g.Next()) / float64(math.MaxUint32)
}
