package vmm

// FIFOReplacer evicts the frame at the region's rotation cursor: the slot
// assigned longest ago. The cursor then advances by one, wrapping modulo the
// region size, so successive evictions sweep the region in order.
type FIFOReplacer struct{}

// NewFIFOReplacer creates a new FIFO replacer
func NewFIFOReplacer() *FIFOReplacer {
	return &FIFOReplacer{}
}

// Victim selects the oldest-assigned slot in the region
func (f *FIFOReplacer) Victim(fp *FramePool, r *region, ctx *EvictContext) (uint32, bool) {
	if r.size == 0 {
		return 0, false
	}

	victim := r.start + r.cursor
	if !fp.frames[victim].InUse {
		return 0, false
	}

	r.cursor = (r.cursor + 1) % r.size
	return victim, true
}

// Name returns the policy name
func (f *FIFOReplacer) Name() string {
	return "fifo"
}
