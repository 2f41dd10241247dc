package interpreter

import (
	"errors"
	"fmt"
)

var (
	// ErrConstraintViolation is matched by every *ConstraintViolationError.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrMalformedGraph is returned for graphs that cannot be walked, such as
	// a missing output node or a function node with too few inputs.
	ErrMalformedGraph = errors.New("malformed graph")
)

// ConstraintViolationError signals that a candidate program broke a domain
// constraint. It is never clamped like a numeric anomaly.
type ConstraintViolationError struct {
	NodeID  int
	Message string
}

func (e *ConstraintViolationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("constraint violation at node %d", e.NodeID)
	}
	return fmt.Sprintf("constraint violation at node %d: %s", e.NodeID, e.Message)
}

// Is lets errors.Is(err, ErrConstraintViolation) match.
func (e *ConstraintViolationError) Is(target error) bool {
	return target == ErrConstraintViolation
}
