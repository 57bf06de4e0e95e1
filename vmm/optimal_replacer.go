package vmm

// OptimalReplacer is the clairvoyant policy: it scans the remaining trace and
// evicts the resident page whose next use lies farthest in the future. A page
// with no future use at all is taken immediately, in region-index order,
// without inspecting the remaining frames. Only usable offline, as a lower
// bound for the realizable policies.
type OptimalReplacer struct{}

// NewOptimalReplacer creates a new optimal replacer
func NewOptimalReplacer() *OptimalReplacer {
	return &OptimalReplacer{}
}

// Victim selects the occupied frame with the farthest next matching access.
// The lookahead matches the exact (process, page) pair against the full
// global trace, not just the faulting process's subsequence.
func (o *OptimalReplacer) Victim(fp *FramePool, r *region, ctx *EvictContext) (uint32, bool) {
	farthestFrame := uint32(0)
	farthestPos := -1
	found := false

	for i := uint32(0); i < r.size; i++ {
		index := r.start + i
		frame := fp.frames[index]
		if !frame.InUse {
			continue
		}

		nextUse := -1
		for j := ctx.Position + 1; j < ctx.Trace.Len(); j++ {
			rec := ctx.Trace.Records[j]
			if rec.PID == frame.Occupant.PID && rec.Page == frame.Occupant.Page {
				nextUse = j
				break
			}
		}

		if nextUse == -1 {
			// Never used again: evict immediately, skip the remaining frames
			if ctx.Metrics != nil {
				ctx.Metrics.RecordLookahead(ctx.Trace.Len() - ctx.Position)
			}
			return index, true
		}

		if nextUse > farthestPos {
			farthestPos = nextUse
			farthestFrame = index
			found = true
		}
	}

	if found && ctx.Metrics != nil {
		ctx.Metrics.RecordLookahead(farthestPos - ctx.Position)
	}

	return farthestFrame, found
}

// Name returns the policy name
func (o *OptimalReplacer) Name() string {
	return "optimal"
}
