package vmm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// AccessRecord is a single memory access: which process touched which page.
// Records are immutable once the trace is loaded.
type AccessRecord struct {
	PID int
	Page uint64
}

// Trace is a fully materialized access sequence. The whole trace is kept in
// memory because the optimal policy needs random access to the future.
type Trace struct {
	Records []AccessRecord
	Fingerprint uint64 // xxhash of the decoded trace bytes
	MaxPID int // Highest process id seen, -1 for an empty trace
}

// Len returns the number of access records in the trace
func (t *Trace) Len() int {
	return len(t.Records)
}

// LoadTrace reads a trace file and converts each virtual address into a page
// number using the given page size (which must be a power of two).
//
// Each line holds one record as "process_id,virtual_address" in decimal.
// Files ending in .snappy or .lz4 are decompressed transparently; anything
// else is read as plain text. If numProcesses is greater than zero, records
// referencing a process id outside [0, numProcesses) are rejected.
func LoadTrace(path string, pageSize uint32, numProcesses int) (*Trace, error) {
	data, err := readTraceFile(path)
	if err != nil {
		return nil, err
	}

	shift := pageShift(pageSize)

	trace := &Trace{
		Records: make([]AccessRecord, 0, 1024),
		Fingerprint: xxhash.Sum64(data),
		MaxPID: -1,
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		pidField, addrField, found := strings.Cut(line, ",")
		if !found {
			return nil, ErrTraceParse("LoadTrace", lineNo,
				fmt.Errorf("expected \"process_id,virtual_address\", got %q", line))
		}

		pid, err := strconv.Atoi(strings.TrimSpace(pidField))
		if err != nil {
			return nil, ErrTraceParse("LoadTrace", lineNo, fmt.Errorf("bad process id: %w", err))
		}

		addr, err := strconv.ParseUint(strings.TrimSpace(addrField), 10, 64)
		if err != nil {
			return nil, ErrTraceParse("LoadTrace", lineNo, fmt.Errorf("bad virtual address: %w", err))
		}

		if pid < 0 {
			return nil, ErrTraceParse("LoadTrace", lineNo, fmt.Errorf("negative process id %d", pid))
		}
		if numProcesses > 0 && pid >= numProcesses {
			return nil, ErrPIDRange("LoadTrace", lineNo, pid, numProcesses)
		}

		if pid > trace.MaxPID {
			trace.MaxPID = pid
		}

		trace.Records = append(trace.Records, AccessRecord{
			PID: pid,
			Page: addr >> shift,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, ErrTraceParse("LoadTrace", lineNo, err)
	}

	return trace, nil
}

// readTraceFile reads and, when necessary, decompresses the trace bytes
func readTraceFile(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".snappy":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, ErrTraceNotFound("readTraceFile", path, err)
		}
		data, err := snappy.Decode(nil, raw)
		if err != nil {
			return nil, ErrTraceParse("readTraceFile", 0, fmt.Errorf("snappy decompression failed: %w", err))
		}
		return data, nil

	case ".lz4":
		file, err := os.Open(path)
		if err != nil {
			return nil, ErrTraceNotFound("readTraceFile", path, err)
		}
		defer file.Close()

		data, err := io.ReadAll(lz4.NewReader(file))
		if err != nil {
			return nil, ErrTraceParse("readTraceFile", 0, fmt.Errorf("lz4 decompression failed: %w", err))
		}
		return data, nil

	default:
		return readFileMapped(path)
	}
}

// pageShift computes log2 of a power-of-two page size
func pageShift(pageSize uint32) uint {
	shift := uint(0)
	for size := pageSize; size > 1; size >>= 1 {
		shift++
	}
	return shift
}
