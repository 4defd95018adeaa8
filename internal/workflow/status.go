package workflow

import "fmt"

// Status is the lifecycle state of a voucher or transaction.
// PENDING is the only non-terminal state.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Decision is a supervisor verdict. It is a Status restricted to the two
// terminal values.
type Decision = Status

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// ParseDecision accepts only APPROVED or REJECTED.
func ParseDecision(s string) (Decision, error) {
	switch Status(s) {
	case StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("decision must be APPROVED or REJECTED, got %q", s)
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether the transition s -> next is allowed.
// The only legal transitions are PENDING -> APPROVED and PENDING -> REJECTED.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusApproved || next == StatusRejected
}
