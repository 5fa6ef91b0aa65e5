// Package ordererror defines the error kinds of an order conversion run and
// the process exit code each of them maps to.
package ordererror

import (
	"errors"
	"fmt"
)

// Process exit codes. Every terminal failure kind has its own code.
const (
	ExitOK            = 0
	ExitUsage         = 1
	ExitInputNotFound = 2
	ExitNoTable       = 3
	ExitWriteFailed   = 4
	ExitConfig        = 5
)

// ErrNoTable is the "no table" signal of the extractor. It is distinct from a
// successful extraction that produced rows.
var ErrNoTable = errors.New("no table found in the PDF")

// UsageError represents a wrong command-line invocation.
type UsageError struct {
	Msg   string
	Usage string
}

func (e *UsageError) Error() string {
	if e.Usage != "" {
		return fmt.Sprintf("%s\nUsage: %s", e.Msg, e.Usage)
	}
	return e.Msg
}

// InputNotFoundError represents a missing input file.
type InputNotFoundError struct {
	FilePath string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("file '%s' does not exist", e.FilePath)
}

// DocumentError represents a PDF that could not be opened or read.
type DocumentError struct {
	FilePath string
	Op       string
	Page     int // 1-based, zero when the failure is not page specific
	Err      error
}

func (e *DocumentError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("document error in '%s' (%s, page %d): %v", e.FilePath, e.Op, e.Page, e.Err)
	}
	return fmt.Sprintf("document error in '%s' (%s): %v", e.FilePath, e.Op, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NoTableError reports that no table rows could be extracted from a file.
// It matches ErrNoTable with errors.Is and keeps the underlying cause, if any.
type NoTableError struct {
	FilePath string
	Err      error
}

func (e *NoTableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no table found in '%s': %v", e.FilePath, e.Err)
	}
	return fmt.Sprintf("no table found in '%s'", e.FilePath)
}

// Is reports whether target is ErrNoTable.
func (e *NoTableError) Is(target error) bool {
	return target == ErrNoTable
}

func (e *NoTableError) Unwrap() error {
	return e.Err
}

// RowError describes a table row that was skipped. It is recoverable and
// never terminates a run.
type RowError struct {
	Index  int
	Length int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d skipped (%d cells): %s", e.Index, e.Length, e.Reason)
}

// WriteError represents a failure to persist the order file.
type WriteError struct {
	FilePath string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write order file '%s': %v", e.FilePath, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration %s: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to the process exit code. Unknown errors are reported
// as usage failures, the same as cobra's own argument errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		notFound *InputNotFoundError
		write    *WriteError
		cfg      *ConfigError
	)
	switch {
	case errors.As(err, &notFound):
		return ExitInputNotFound
	case errors.Is(err, ErrNoTable):
		return ExitNoTable
	case errors.As(err, &write):
		return ExitWriteFailed
	case errors.As(err, &cfg):
		return ExitConfig
	default:
		return ExitUsage
	}
}
