package vmm

// PageTable maps one process's resident pages to physical frame indices and
// counts that process's page faults. Consistency with the frame pool is the
// caller's responsibility.
type PageTable struct {
	pid int
	pageToFrame map[uint64]uint32
	faultCount uint64
}

// NewPageTable creates an empty page table for the given process
func NewPageTable(pid int) *PageTable {
	return &PageTable{
		pid: pid,
		pageToFrame: make(map[uint64]uint32),
	}
}

// PID returns the owning process id
func (pt *PageTable) PID() int {
	return pt.pid
}

// Lookup returns the frame holding the page, if the page is resident
func (pt *PageTable) Lookup(page uint64) (uint32, bool) {
	frame, ok := pt.pageToFrame[page]
	return frame, ok
}

// Insert records that the page is resident in the given frame
func (pt *PageTable) Insert(page uint64, frame uint32) {
	pt.pageToFrame[page] = frame
}

// Remove drops the page's mapping after eviction
func (pt *PageTable) Remove(page uint64) {
	delete(pt.pageToFrame, page)
}

// Resident returns the number of resident pages
func (pt *PageTable) Resident() int {
	return len(pt.pageToFrame)
}

// RecordFault increments the per-process fault counter
func (pt *PageTable) RecordFault() {
	pt.faultCount++
}

// FaultCount returns the number of faults this process has taken
func (pt *PageTable) FaultCount() uint64 {
	return pt.faultCount
}
