package vmm

// LRUReplacer evicts the least recently touched frame in the region. Both the
// initial allocation and every subsequent hit count as a touch; the region's
// recency list keeps that order exact.
type LRUReplacer struct{}

// NewLRUReplacer creates a new LRU replacer
func NewLRUReplacer() *LRUReplacer {
	return &LRUReplacer{}
}

// Victim selects the frame at the front of the region's recency order
func (l *LRUReplacer) Victim(fp *FramePool, r *region, ctx *EvictContext) (uint32, bool) {
	return r.leastRecent()
}

// Name returns the policy name
func (l *LRUReplacer) Name() string {
	return "lru"
}
