package vmm

import (
	"container/list"
	"strings"
)

// Allocation selects how the physical frame pool is shared among processes
type Allocation int

const (
	// AllocationGlobal keeps one pool shared by every process
	AllocationGlobal Allocation = iota
	// AllocationLocal splits the pool into equal static per-process partitions
	AllocationLocal
)

// ParseAllocation converts an allocation discipline name to its enum value
func ParseAllocation(s string) (Allocation, error) {
	switch strings.ToLower(s) {
	case "global":
		return AllocationGlobal, nil
	case "local":
		return AllocationLocal, nil
	default:
		return AllocationGlobal, ErrUnknownAllocation("ParseAllocation", s)
	}
}

// String returns the allocation discipline name
func (a Allocation) String() string {
	if a == AllocationLocal {
		return "local"
	}
	return "global"
}

// FrameOccupant identifies the page resident in a frame
type FrameOccupant struct {
	PID int
	Page uint64
}

// Frame is one physical frame slot: free, or holding exactly one page of
// exactly one process.
type Frame struct {
	Occupant FrameOccupant
	InUse bool
}

// EvictResult reports the full identity of a displaced page so the caller can
// clear the evicted process's page table before installing the new mapping.
type EvictResult struct {
	PID int
	Page uint64
	Frame uint32
}

// region is the span of the pool reachable by one process: the whole pool in
// global mode, the process's partition in local mode. Each region carries its
// own rotation cursor (FIFO order) and recency list (LRU order).
type region struct {
	start uint32
	size uint32
	cursor uint32 // rotation cursor, relative to start
	recency *list.List // frame indices, front = least recently touched
	recencyMap map[uint32]*list.Element
}

func newRegion(start, size uint32) *region {
	return &region{
		start: start,
		size: size,
		recency: list.New(),
		recencyMap: make(map[uint32]*list.Element),
	}
}

// touch marks the frame as most recently used within the region
func (r *region) touch(frame uint32) {
	if elem, exists := r.recencyMap[frame]; exists {
		r.recency.MoveToBack(elem)
		return
	}
	r.recencyMap[frame] = r.recency.PushBack(frame)
}

// forget drops the frame from the recency order
func (r *region) forget(frame uint32) {
	if elem, exists := r.recencyMap[frame]; exists {
		r.recency.Remove(elem)
		delete(r.recencyMap, frame)
	}
}

// leastRecent returns the least recently touched frame in the region
func (r *region) leastRecent() (uint32, bool) {
	front := r.recency.Front()
	if front == nil {
		return 0, false
	}
	return front.Value.(uint32), true
}

// FramePool owns the physical frames and the per-region bookkeeping every
// replacement policy relies on. Both allocation disciplines run through the
// same pool; only the region reachable by a process differs.
type FramePool struct {
	frames []Frame
	regions []*region
	allocation Allocation
	unused uint32 // remainder frames outside every local partition
}

// NewFramePool creates a frame pool for the given discipline. In local mode
// the pool is split into numProcesses equal contiguous partitions; remainder
// frames stay unused.
func NewFramePool(numFrames uint32, numProcesses int, allocation Allocation) (*FramePool, error) {
	if numFrames == 0 {
		return nil, ErrInvalidConfig("NewFramePool", "number of frames must be greater than 0")
	}

	fp := &FramePool{
		frames: make([]Frame, numFrames),
		allocation: allocation,
	}

	switch allocation {
	case AllocationGlobal:
		fp.regions = []*region{newRegion(0, numFrames)}

	case AllocationLocal:
		if numProcesses <= 0 {
			return nil, ErrInvalidConfig("NewFramePool", "local allocation requires at least one process")
		}
		partition := numFrames / uint32(numProcesses)
		if partition == 0 {
			return nil, ErrInvalidConfig("NewFramePool", "fewer frames than processes")
		}
		fp.regions = make([]*region, numProcesses)
		for i := 0; i < numProcesses; i++ {
			fp.regions[i] = newRegion(uint32(i)*partition, partition)
		}
		fp.unused = numFrames % uint32(numProcesses)

	default:
		return nil, ErrUnknownAllocation("NewFramePool", allocation.String())
	}

	return fp, nil
}

// regionOf resolves the region reachable by a process
func (fp *FramePool) regionOf(pid int) *region {
	if fp.allocation == AllocationGlobal {
		return fp.regions[0]
	}
	return fp.regions[pid]
}

// NumFrames returns the total pool size
func (fp *FramePool) NumFrames() uint32 {
	return uint32(len(fp.frames))
}

// UnusedFrames returns the remainder frames no local partition covers
func (fp *FramePool) UnusedFrames() uint32 {
	return fp.unused
}

// FrameAt returns a copy of the frame at the given index
func (fp *FramePool) FrameAt(index uint32) Frame {
	return fp.frames[index]
}

// Allocate grants a free frame reachable by the process, scanning in
// ascending index order from the region's rotation cursor. Returns false when
// the reachable region is fully occupied.
func (fp *FramePool) Allocate(pid int, page uint64) (uint32, bool) {
	r := fp.regionOf(pid)
	for i := uint32(0); i < r.size; i++ {
		index := r.start + (r.cursor+i)%r.size
		if fp.frames[index].InUse {
			continue
		}
		fp.frames[index] = Frame{
			Occupant: FrameOccupant{PID: pid, Page: page},
			InUse: true,
		}
		r.cursor = (r.cursor + i + 1) % r.size
		r.touch(index)
		return index, true
	}
	return 0, false
}

// Touch marks a resident frame as most recently used. Called on every hit so
// the recency order stays exact for LRU.
func (fp *FramePool) Touch(pid int, frame uint32) {
	fp.regionOf(pid).touch(frame)
}

// Evict asks the replacer for a victim within the process's reachable region,
// clears the victim frame, installs the new occupant, and reports what was
// displaced.
func (fp *FramePool) Evict(replacer Replacer, pid int, page uint64, ctx *EvictContext) (EvictResult, error) {
	r := fp.regionOf(pid)

	victim, ok := replacer.Victim(fp, r, ctx)
	if !ok {
		return EvictResult{}, ErrNoVictim("Evict", pid)
	}

	old := fp.frames[victim].Occupant
	r.forget(victim)

	fp.frames[victim] = Frame{
		Occupant: FrameOccupant{PID: pid, Page: page},
		InUse: true,
	}
	r.touch(victim)

	return EvictResult{PID: old.PID, Page: old.Page, Frame: victim}, nil
}
