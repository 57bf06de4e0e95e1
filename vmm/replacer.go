package vmm

import (
	"math/rand"
	"strings"
)

// EvictContext carries the simulation state a policy may need to pick a
// victim. The optimal policy reads the remaining trace; the others ignore it.
type EvictContext struct {
	Trace *Trace
	Position int // Index of the faulting access in the trace
	Metrics *Metrics // Optional, may be nil
}

// Replacer selects which occupied frame to reclaim when a process faults and
// its reachable region is full.
type Replacer interface {
	// Victim returns the absolute index of the frame to reclaim within the
	// region, and false if the region holds no occupied frame.
	Victim(fp *FramePool, r *region, ctx *EvictContext) (uint32, bool)

	// Name returns the policy name
	Name() string
}

// ParsePolicy validates a policy name without constructing a replacer
func ParsePolicy(policy string) (string, error) {
	switch strings.ToLower(policy) {
	case "fifo", "lru", "optimal", "random":
		return strings.ToLower(policy), nil
	default:
		return "", ErrUnknownPolicy("ParsePolicy", policy)
	}
}

// NewReplacer creates a replacer for the named policy. Unknown names are a
// configuration error, never a silent fallback.
func NewReplacer(policy string, seed int64) (Replacer, error) {
	name, err := ParsePolicy(policy)
	if err != nil {
		return nil, err
	}

	switch name {
	case "fifo":
		return NewFIFOReplacer(), nil
	case "lru":
		return NewLRUReplacer(), nil
	case "optimal":
		return NewOptimalReplacer(), nil
	default:
		return NewRandomReplacer(rand.New(rand.NewSource(seed))), nil
	}
}
