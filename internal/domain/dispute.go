package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type DisputeStatus int

const (
	DisputePending       DisputeStatus = 0
	DisputeApproved      DisputeStatus = 1
	DisputeRejected      DisputeStatus = 2
	DisputeInAdminReview DisputeStatus = 3
	DisputeResolved      DisputeStatus = 4
)

var disputeStatusNames = map[DisputeStatus]string{
	DisputePending:       "PENDING",
	DisputeApproved:      "APPROVED",
	DisputeRejected:      "REJECTED",
	DisputeInAdminReview: "IN_ADMIN_REVIEW",
	DisputeResolved:      "RESOLVED",
}

func (s DisputeStatus) String() string {
	if name, ok := disputeStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(s))
}

// IsOpen reports whether the dispute still counts as the active dispute of
// its escrow. A second dispute may only be opened once this one is resolved.
func (s DisputeStatus) IsOpen() bool {
	return s != DisputeResolved
}

// BlocksCompletion reports whether the dispute forbids releasing funds to the
// farmer. Peer-decided disputes (approved/rejected) no longer block; the
// escrow status itself reflects the outcome.
func (s DisputeStatus) BlocksCompletion() bool {
	return s == DisputePending || s == DisputeInAdminReview
}

// ParseDisputeStatus normalizes the wire dispute status, which arrives as a
// JSON number or a numeric/label string depending on the endpoint.
func ParseDisputeStatus(v any) (DisputeStatus, error) {
	switch raw := v.(type) {
	case DisputeStatus:
		return checkDisputeStatus(int(raw))
	case int:
		return checkDisputeStatus(raw)
	case int64:
		return checkDisputeStatus(int(raw))
	case float64:
		if raw != float64(int(raw)) {
			return 0, fmt.Errorf("non-integral dispute status %v", raw)
		}
		return checkDisputeStatus(int(raw))
	case json.Number:
		n, err := raw.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid dispute status %q: %w", raw.String(), err)
		}
		return checkDisputeStatus(int(n))
	case string:
		trimmed := strings.TrimSpace(raw)
		if n, err := strconv.Atoi(trimmed); err == nil {
			return checkDisputeStatus(n)
		}
		label := strings.ToUpper(strings.ReplaceAll(trimmed, " ", "_"))
		for status, name := range disputeStatusNames {
			if name == label {
				return status, nil
			}
		}
		return 0, fmt.Errorf("unknown dispute status label %q", raw)
	case nil:
		return 0, fmt.Errorf("missing dispute status")
	default:
		return 0, fmt.Errorf("unsupported dispute status type %T", v)
	}
}

func checkDisputeStatus(code int) (DisputeStatus, error) {
	if code < int(DisputePending) || code > int(DisputeResolved) {
		return 0, fmt.Errorf("dispute status code %d out of range", code)
	}
	return DisputeStatus(code), nil
}

type Role string

const (
	RoleFarmer     Role = "FARMER"
	RoleWholesaler Role = "WHOLESALER"
)

type Dispute struct {
	ID       string
	EscrowID string

	Message            string
	ActualAmount       decimal.Decimal
	ActualGrade1Amount decimal.Decimal
	ActualGrade2Amount decimal.Decimal
	ActualGrade3Amount decimal.Decimal
	Attachments        []string

	WholesalerCreated bool
	Status            DisputeStatus
}

// ClaimantRole is the role that opened the dispute. Computed once here so no
// call site re-derives reviewer eligibility from the wire flag.
func (d *Dispute) ClaimantRole() Role {
	if d.WholesalerCreated {
		return RoleWholesaler
	}
	return RoleFarmer
}

// ReviewerRole is the counterpart role entitled to accept or reject the claim
// before admin escalation.
func (d *Dispute) ReviewerRole() Role {
	if d.WholesalerCreated {
		return RoleFarmer
	}
	return RoleWholesaler
}

type DisputeResolution struct {
	DisputeID     string
	EscrowID      string
	RefundAmount  decimal.Decimal
	FinalDecision bool
	AdminNote     string
	Status        DisputeStatus
}

// DisputeClaim is the buyer- or seller-side statement of what actually
// arrived, broken down by quality grade.
type DisputeClaim struct {
	Message            string
	ActualAmount       decimal.Decimal
	ActualGrade1Amount decimal.Decimal
	ActualGrade2Amount decimal.Decimal
	ActualGrade3Amount decimal.Decimal
}

// Validate applies the client-side sanity checks; the server remains
// authoritative.
func (c *DisputeClaim) Validate() error {
	if strings.TrimSpace(c.Message) == "" {
		return fmt.Errorf("dispute message is required")
	}
	for _, amount := range []decimal.Decimal{c.ActualAmount, c.ActualGrade1Amount, c.ActualGrade2Amount, c.ActualGrade3Amount} {
		if amount.IsNegative() {
			return fmt.Errorf("claim amounts must be non-negative")
		}
	}
	gradeSum := c.ActualGrade1Amount.Add(c.ActualGrade2Amount).Add(c.ActualGrade3Amount)
	if gradeSum.GreaterThan(c.ActualAmount) {
		return fmt.Errorf("graded amounts %s exceed actual amount %s", gradeSum, c.ActualAmount)
	}
	return nil
}
