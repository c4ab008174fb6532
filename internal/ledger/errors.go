package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dsakenov/minebudget/internal/model"
)

// ValidationError rejects bad input before any write happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientFundsError rejects a revision that would overdraw the
// source project. Available carries the source's computed funds so the
// caller can report how much was actually transferable.
type InsufficientFundsError struct {
	ProjectID int64
	Available float64
	Requested float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in project %d: available %.2f, requested %.2f",
		e.ProjectID, e.Available, e.Requested)
}

// HasHistoryError blocks deletion of a project with recorded events.
type HasHistoryError struct {
	ProjectID int64
	Counts    model.ActivityCounts
}

func (e *HasHistoryError) Error() string {
	return fmt.Sprintf("project %d has history: %d corrections, %d marketing, %d contracts, %d revisions",
		e.ProjectID, e.Counts.Corrections, e.Counts.Marketing, e.Counts.Contracts, e.Counts.Revisions)
}

// StorageCategory is a coarse user-facing classification of storage
// failures, used for diagnostic display.
type StorageCategory string

const (
	StorageNotADatabase StorageCategory = "not-a-database"
	StorageLocked       StorageCategory = "locked"
	StorageIOError      StorageCategory = "io-error"
	StorageCorrupt      StorageCategory = "corrupt"
	StorageMissingTable StorageCategory = "missing-table"
	StorageUnknown      StorageCategory = "unknown"
)

// StorageError wraps a low-level database or filesystem failure.
type StorageError struct {
	Category StorageCategory
	Op       string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Category, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// classifyStorage maps driver error text onto a StorageCategory.
func classifyStorage(err error) StorageCategory {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not a database"):
		return StorageNotADatabase
	case strings.Contains(msg, "locked") || strings.Contains(msg, "busy"):
		return StorageLocked
	case strings.Contains(msg, "disk i/o") || strings.Contains(msg, "io error") ||
		strings.Contains(msg, "unable to open") || strings.Contains(msg, "could not open"):
		return StorageIOError
	case strings.Contains(msg, "corrupt") || strings.Contains(msg, "malformed"):
		return StorageCorrupt
	case strings.Contains(msg, "no such table"):
		return StorageMissingTable
	default:
		return StorageUnknown
	}
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Category: classifyStorage(err), Op: op, Err: err}
}
