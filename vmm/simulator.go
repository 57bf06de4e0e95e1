package vmm

import (
	"fmt"
	"io"
	"log/slog"
)

// Report holds the final statistics of one simulation run
type Report struct {
	GlobalFaults uint64
	ProcessFaults []uint64 // Indexed by process id
	Hits uint64
	Evictions uint64
	Records int
	TraceFingerprint uint64
}

// Print writes the fault counts in the classic reporting format: the global
// count first, then one line per process in index order.
func (r *Report) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Global page fault count: %d\n", r.GlobalFaults); err != nil {
		return err
	}
	for pid, faults := range r.ProcessFaults {
		if _, err := fmt.Fprintf(w, "Process %d page fault count: %d\n", pid, faults); err != nil {
			return err
		}
	}
	return nil
}

// Simulator replays a materialized trace against the frame pool once, in
// order, and counts page faults. It exclusively owns every page table and the
// pool for the duration of the run, so independent simulations can run
// side by side.
type Simulator struct {
	cfg *Config
	trace *Trace
	tables []*PageTable
	pool *FramePool
	replacer Replacer
	metrics *Metrics
	logger *slog.Logger
	globalFaults uint64
}

// NewSimulator builds a simulator from a validated configuration and a loaded
// trace. When the configured process count is zero it is derived from the
// highest process id the trace references.
func NewSimulator(cfg *Config, trace *Trace, logger *slog.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg = cfg.Clone()
	if cfg.NumProcesses == 0 {
		cfg.NumProcesses = trace.MaxPID + 1
		if cfg.NumProcesses == 0 {
			cfg.NumProcesses = 1 // Empty trace still reports one process
		}
		logger.Debug("derived process count from trace", slog.Int("num_processes", cfg.NumProcesses))
	}

	if trace.MaxPID >= cfg.NumProcesses {
		return nil, ErrPIDRange("NewSimulator", 0, trace.MaxPID, cfg.NumProcesses)
	}

	allocation, err := ParseAllocation(cfg.Allocation)
	if err != nil {
		return nil, err
	}

	pool, err := NewFramePool(cfg.NumFrames, cfg.NumProcesses, allocation)
	if err != nil {
		return nil, err
	}
	if unused := pool.UnusedFrames(); unused > 0 {
		logger.Warn("frame count not divisible by process count, remainder frames stay unused",
			slog.Uint64("unused_frames", uint64(unused)))
	}

	replacer, err := NewReplacer(cfg.Policy, cfg.Seed)
	if err != nil {
		return nil, err
	}

	tables := make([]*PageTable, cfg.NumProcesses)
	for pid := range tables {
		tables[pid] = NewPageTable(pid)
	}

	return &Simulator{
		cfg: cfg,
		trace: trace,
		tables: tables,
		pool: pool,
		replacer: replacer,
		metrics: NewMetrics(),
		logger: logger,
	}, nil
}

// Metrics returns the run's metrics tracker
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Run replays the trace once and returns the final statistics. Each record is
// processed exactly once, in trace order; LRU recency and optimal lookahead
// both depend on that order.
func (s *Simulator) Run() (*Report, error) {
	s.logger.Debug("starting simulation",
		slog.String("policy", s.replacer.Name()),
		slog.String("allocation", s.cfg.Allocation),
		slog.Uint64("num_frames", uint64(s.cfg.NumFrames)),
		slog.Int("num_processes", s.cfg.NumProcesses),
		slog.Int("records", s.trace.Len()),
		slog.String("trace_fingerprint", fmt.Sprintf("%016x", s.trace.Fingerprint)),
	)

	for i, rec := range s.trace.Records {
		if err := s.step(i, rec); err != nil {
			return nil, err
		}
	}

	return s.report(), nil
}

// step dispatches one access record: hit, fault into a free frame, or fault
// with eviction.
func (s *Simulator) step(pos int, rec AccessRecord) error {
	table := s.tables[rec.PID]

	// HIT: the page is resident; only the recency order changes
	if frame, ok := table.Lookup(rec.Page); ok {
		s.pool.Touch(rec.PID, frame)
		s.metrics.RecordHit()
		return nil
	}

	table.RecordFault()
	s.globalFaults++
	s.metrics.RecordFault()

	// FAULT_FREE: a reachable frame is still free
	if frame, ok := s.pool.Allocate(rec.PID, rec.Page); ok {
		table.Insert(rec.Page, frame)
		return nil
	}

	// FAULT_EVICT: reclaim a victim, clear the displaced mapping first
	result, err := s.pool.Evict(s.replacer, rec.PID, rec.Page, &EvictContext{
		Trace: s.trace,
		Position: pos,
		Metrics: s.metrics,
	})
	if err != nil {
		return err
	}

	s.tables[result.PID].Remove(result.Page)
	table.Insert(rec.Page, result.Frame)
	s.metrics.RecordEviction()
	return nil
}

// report assembles the final statistics
func (s *Simulator) report() *Report {
	faults := make([]uint64, len(s.tables))
	for pid, table := range s.tables {
		faults[pid] = table.FaultCount()
	}

	return &Report{
		GlobalFaults: s.globalFaults,
		ProcessFaults: faults,
		Hits: s.metrics.GetHits(),
		Evictions: s.metrics.GetEvictions(),
		Records: s.trace.Len(),
		TraceFingerprint: s.trace.Fingerprint,
	}
}
