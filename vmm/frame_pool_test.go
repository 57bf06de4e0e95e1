package vmm

import (
	"testing"
)

func mustPool(t *testing.T, numFrames uint32, numProcesses int, allocation Allocation) *FramePool {
	t.Helper()
	pool, err := NewFramePool(numFrames, numProcesses, allocation)
	if err != nil {
		t.Fatalf("NewFramePool failed: %v", err)
	}
	return pool
}

// TestParseAllocation tests allocation discipline parsing
func TestParseAllocation(t *testing.T) {
	if a, err := ParseAllocation("global"); err != nil || a != AllocationGlobal {
		t.Errorf("Expected global, got %v (err %v)", a, err)
	}
	if a, err := ParseAllocation("local"); err != nil || a != AllocationLocal {
		t.Errorf("Expected local, got %v (err %v)", a, err)
	}
	if _, err := ParseAllocation("static"); !IsErrorCode(err, ErrCodeUnknownAllocation) {
		t.Errorf("Expected unknown allocation error, got %v", err)
	}
}

// TestGlobalAllocationOrder tests that fresh frames are granted in ascending
// index order from the rotation cursor
func TestGlobalAllocationOrder(t *testing.T) {
	pool := mustPool(t, 3, 1, AllocationGlobal)

	for want := uint32(0); want < 3; want++ {
		frame, ok := pool.Allocate(0, uint64(want+10))
		if !ok {
			t.Fatalf("Expected allocation %d to succeed", want)
		}
		if frame != want {
			t.Errorf("Expected frame %d, got %d", want, frame)
		}
	}

	// Pool is full now
	if _, ok := pool.Allocate(0, 99); ok {
		t.Error("Expected allocation to fail on a full pool")
	}
}

// TestLocalPartitionIsolation tests that a process can only reach its own
// partition in local mode
func TestLocalPartitionIsolation(t *testing.T) {
	pool := mustPool(t, 4, 2, AllocationLocal)

	// Process 0 owns frames [0,2), process 1 owns [2,4)
	f0, ok := pool.Allocate(0, 100)
	if !ok || f0 != 0 {
		t.Fatalf("Expected process 0 to get frame 0, got %d (ok %v)", f0, ok)
	}

	f1, ok := pool.Allocate(1, 200)
	if !ok || f1 != 2 {
		t.Fatalf("Expected process 1 to get frame 2, got %d (ok %v)", f1, ok)
	}

	pool.Allocate(0, 101)
	if _, ok := pool.Allocate(0, 102); ok {
		t.Error("Expected process 0's partition to be full despite free frames elsewhere")
	}

	// Process 1 still has room
	if _, ok := pool.Allocate(1, 201); !ok {
		t.Error("Expected process 1's partition to still have a free frame")
	}
}

// TestLocalUnusedRemainder tests that remainder frames stay outside every
// partition when the pool does not divide evenly
func TestLocalUnusedRemainder(t *testing.T) {
	pool := mustPool(t, 5, 2, AllocationLocal)

	if pool.UnusedFrames() != 1 {
		t.Errorf("Expected 1 unused frame, got %d", pool.UnusedFrames())
	}

	pool.Allocate(0, 1)
	pool.Allocate(0, 2)
	pool.Allocate(1, 3)
	pool.Allocate(1, 4)

	if _, ok := pool.Allocate(0, 5); ok {
		t.Error("Expected the remainder frame to be unreachable by process 0")
	}
	if _, ok := pool.Allocate(1, 5); ok {
		t.Error("Expected the remainder frame to be unreachable by process 1")
	}
	if pool.FrameAt(4).InUse {
		t.Error("Expected frame 4 to stay free")
	}
}

// TestLocalPartitionTooSmall tests the fewer-frames-than-processes error
func TestLocalPartitionTooSmall(t *testing.T) {
	if _, err := NewFramePool(3, 4, AllocationLocal); !IsErrorCode(err, ErrCodeInvalidConfig) {
		t.Errorf("Expected invalid config error, got %v", err)
	}
}

// TestEvictClearsAndInstalls tests that eviction fully swaps the occupant and
// reports the displaced identity
func TestEvictClearsAndInstalls(t *testing.T) {
	pool := mustPool(t, 2, 1, AllocationGlobal)
	pool.Allocate(0, 10)
	pool.Allocate(0, 11)

	result, err := pool.Evict(NewFIFOReplacer(), 0, 12, &EvictContext{})
	if err != nil {
		t.Fatalf("Evict failed: %v", err)
	}

	if result.PID != 0 || result.Page != 10 || result.Frame != 0 {
		t.Errorf("Expected displaced (0, 10) from frame 0, got (%d, %d) from frame %d",
			result.PID, result.Page, result.Frame)
	}

	frame := pool.FrameAt(result.Frame)
	if !frame.InUse || frame.Occupant.Page != 12 {
		t.Errorf("Expected frame %d to hold page 12, got %+v", result.Frame, frame)
	}
}

// TestEvictEmptyRegion tests eviction on a region with no occupied frames
func TestEvictEmptyRegion(t *testing.T) {
	pool := mustPool(t, 2, 1, AllocationGlobal)

	_, err := pool.Evict(NewLRUReplacer(), 0, 1, &EvictContext{})
	if !IsErrorCode(err, ErrCodeNoVictim) {
		t.Errorf("Expected no-victim error, got %v", err)
	}
}

// TestRecencyOrder tests the region recency bookkeeping
func TestRecencyOrder(t *testing.T) {
	pool := mustPool(t, 3, 1, AllocationGlobal)
	pool.Allocate(0, 10) // frame 0
	pool.Allocate(0, 11) // frame 1
	pool.Allocate(0, 12) // frame 2

	r := pool.regionOf(0)

	front, ok := r.leastRecent()
	if !ok || front != 0 {
		t.Fatalf("Expected frame 0 to be least recent, got %d (ok %v)", front, ok)
	}

	// Touching frame 0 moves it to the most recent end
	pool.Touch(0, 0)
	front, ok = r.leastRecent()
	if !ok || front != 1 {
		t.Errorf("Expected frame 1 to be least recent after touch, got %d (ok %v)", front, ok)
	}
}
