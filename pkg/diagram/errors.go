package diagram

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Graph operations. Editors treat all of them as
// silent no-ops; they exist so callers can log why an edit was ignored.
var (
	ErrNodeNotFound        = errors.New("node not found")
	ErrConnectionNotFound  = errors.New("connection not found")
	ErrSelfLoop            = errors.New("connection start and end are the same node")
	ErrDuplicateConnection = errors.New("connection already exists")
)

// GraphError carries the operation and entity that failed.
type GraphError struct {
	Op     string // e.g. "connect"
	Entity string // "node" or "connection"
	ID     uint64
	Cause  error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is / errors.As.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

func nodeError(op string, id NodeID, cause error) error {
	return &GraphError{Op: op, Entity: "node", ID: uint64(id), Cause: cause}
}

func connectionError(op string, from, to NodeID, cause error) error {
	return &GraphError{
		Op:     op,
		Entity: fmt.Sprintf("connection %d->%d", from, to),
		Cause:  cause,
	}
}

// IsRejectedConnection reports whether err is one of the guard failures that
// Connect returns for self loops and duplicate pairs.
func IsRejectedConnection(err error) bool {
	return errors.Is(err, ErrSelfLoop) || errors.Is(err, ErrDuplicateConnection)
}
