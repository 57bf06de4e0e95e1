package vmm

import (
	"math/rand"
)

// RandomReplacer evicts a uniformly chosen frame within the region. The
// pseudo-random source is injected so a fixed seed gives a reproducible run.
type RandomReplacer struct {
	rng *rand.Rand
}

// NewRandomReplacer creates a random replacer backed by the given source
func NewRandomReplacer(rng *rand.Rand) *RandomReplacer {
	return &RandomReplacer{rng: rng}
}

// Victim draws a uniform frame index within the region
func (rr *RandomReplacer) Victim(fp *FramePool, r *region, ctx *EvictContext) (uint32, bool) {
	if r.size == 0 {
		return 0, false
	}

	victim := r.start + uint32(rr.rng.Intn(int(r.size)))
	if !fp.frames[victim].InUse {
		return 0, false
	}

	return victim, true
}

// Name returns the policy name
func (rr *RandomReplacer) Name() string {
	return "random"
}
