package vmm

import (
	"fmt"
)

// ErrorCode represents different types of simulation errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Configuration errors
	ErrCodeInvalidConfig
	ErrCodeUnknownPolicy
	ErrCodeUnknownAllocation

	// Trace errors
	ErrCodeTraceNotFound
	ErrCodeTraceParse
	ErrCodePIDRange

	// Engine errors
	ErrCodeNoVictim
)

// SimError represents a simulator error with context
type SimError struct {
	Code ErrorCode
	Message string
	Op string // Operation that failed
	Err error // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulator error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code: code,
		Message: message,
		Op: op,
		Err: err,
	}
}

// Helper functions for common errors

func ErrInvalidConfig(op, message string) *SimError {
	return NewSimError(
		ErrCodeInvalidConfig,
		op,
		message,
		nil,
	)
}

func ErrUnknownPolicy(op, policy string) *SimError {
	return NewSimError(
		ErrCodeUnknownPolicy,
		op,
		fmt.Sprintf("unknown replacement policy %q (must be fifo, lru, optimal, or random)", policy),
		nil,
	)
}

func ErrUnknownAllocation(op, allocation string) *SimError {
	return NewSimError(
		ErrCodeUnknownAllocation,
		op,
		fmt.Sprintf("unknown allocation discipline %q (must be global or local)", allocation),
		nil,
	)
}

func ErrTraceNotFound(op, path string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceNotFound,
		op,
		fmt.Sprintf("cannot read trace file %s", path),
		err,
	)
}

func ErrTraceParse(op string, line int, err error) *SimError {
	return NewSimError(
		ErrCodeTraceParse,
		op,
		fmt.Sprintf("malformed trace record at line %d", line),
		err,
	)
}

func ErrPIDRange(op string, line, pid, numProcesses int) *SimError {
	message := fmt.Sprintf("process id %d outside configured range [0, %d)", pid, numProcesses)
	if line > 0 {
		message = fmt.Sprintf("process id %d at line %d outside configured range [0, %d)", pid, line, numProcesses)
	}
	return NewSimError(
		ErrCodePIDRange,
		op,
		message,
		nil,
	)
}

func ErrNoVictim(op string, pid int) *SimError {
	return NewSimError(
		ErrCodeNoVictim,
		op,
		fmt.Sprintf("no evictable frame reachable by process %d", pid),
		nil,
	)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	if se, ok := err.(*SimError); ok {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	if se, ok := err.(*SimError); ok {
		return se.Code
	}
	return ErrCodeUnknown
}
