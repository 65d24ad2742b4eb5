package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrContractClosed    = errors.New("escrow contract closed")
	ErrAlreadyPaid       = errors.New("deposit already paid")
	ErrAlreadyReady      = errors.New("escrow already marked ready to harvest")
	ErrAlreadyReviewed   = errors.New("dispute already reviewed")
	ErrDisputeExists     = errors.New("active dispute already exists")
	ErrDisputeBlocks     = errors.New("active dispute blocks completion")
	ErrWrongRole         = errors.New("action not permitted for caller role")
	ErrClaimantReview    = errors.New("claimant may not review own dispute")
	ErrOperationInFlight = errors.New("another operation is in flight for this entity")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrNotFound          = errors.New("not found")
)

// GuardError reports a precondition that failed locally. It never reaches the
// transport layer.
type GuardError struct {
	Action Action
	Status EscrowStatus
	Role   Role
	Err    error
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("guard rejected %s in status %s for role %s: %v", e.Action, e.Status, e.Role, e.Err)
}

func (e *GuardError) Unwrap() error { return e.Err }

func IsGuardViolation(err error) bool {
	var guardErr *GuardError
	return errors.As(err, &guardErr)
}

// RemoteError is a request the server received and refused. Reason carries
// the server's own wording; known reasons unwrap to a specific sentinel so
// callers can branch without string matching.
type RemoteError struct {
	Reason string
	Err    error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("gateway rejected request: %s", e.Reason)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// NewRemoteError maps the known server reasons onto sentinels.
func NewRemoteError(reason string) *RemoteError {
	err := &RemoteError{Reason: reason}
	lowered := strings.ToLower(reason)
	switch {
	case strings.Contains(lowered, "already paid"):
		err.Err = ErrAlreadyPaid
	case strings.Contains(lowered, "already ready"):
		err.Err = ErrAlreadyReady
	case strings.Contains(lowered, "already reviewed"), strings.Contains(lowered, "already decided"):
		err.Err = ErrAlreadyReviewed
	case strings.Contains(lowered, "dispute exists"), strings.Contains(lowered, "dispute already"):
		err.Err = ErrDisputeExists
	case strings.Contains(lowered, "insufficient"):
		err.Err = ErrInsufficientFunds
	case strings.Contains(lowered, "not found"):
		err.Err = ErrNotFound
	}
	return err
}

// TransportError is a network, timeout or decoding failure: the outcome is
// unknown and the caller must re-fetch authoritative state rather than assume
// either success or failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func IsTransportFailure(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
