package projection

import (
	"testing"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func contractIn(status domain.EscrowStatus) *domain.EscrowContract {
	return &domain.EscrowContract{
		ID:           "e1",
		Origin:       domain.AuctionOrigin("a1"),
		TotalAmount:  decimal.NewFromInt(1_000_000),
		EscrowAmount: decimal.NewFromInt(300_000),
		Status:       status,
	}
}

func TestProjectLabelsPerRole(t *testing.T) {
	tests := []struct {
		name   string
		status domain.EscrowStatus
		role   domain.Role
		want   string
	}{
		{name: "pending as buyer", status: domain.StatusPendingPayment, role: domain.RoleWholesaler, want: "Awaiting your deposit"},
		{name: "pending as farmer", status: domain.StatusPendingPayment, role: domain.RoleFarmer, want: "Awaiting buyer deposit"},
		{name: "ready as buyer", status: domain.StatusReadyToHarvest, role: domain.RoleWholesaler, want: "Goods ready, remainder due"},
		{name: "completed as farmer", status: domain.StatusCompleted, role: domain.RoleFarmer, want: "Completed, funds released to you"},
		{name: "refunded", status: domain.StatusRefunded, role: domain.RoleWholesaler, want: "Refunded to buyer"},
		{name: "canceled", status: domain.StatusCanceled, role: domain.RoleFarmer, want: "Canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Project(contractIn(tt.status), nil, nil, tt.role, domain.Policy{})
			assert.Equal(t, tt.want, view.Label)
		})
	}
}

// An escrow in Disputed with no resolution yet renders as pending, not as an
// error. Absence of the resolution record is a valid intermediate state.
func TestProjectDisputedWithoutResolution(t *testing.T) {
	dispute := &domain.Dispute{ID: "d1", Status: domain.DisputeInAdminReview}
	view := Project(contractIn(domain.StatusDisputed), dispute, nil, domain.RoleWholesaler, domain.Policy{})

	assert.Equal(t, "Dispute pending", view.Label)
	assert.True(t, view.DisputePending)
	assert.Empty(t, view.Actions)
}

func TestProjectDisputedWithFinalResolution(t *testing.T) {
	dispute := &domain.Dispute{ID: "d1", Status: domain.DisputeResolved}
	resolution := &domain.DisputeResolution{DisputeID: "d1", FinalDecision: true}
	view := Project(contractIn(domain.StatusDisputed), dispute, resolution, domain.RoleFarmer, domain.Policy{})

	assert.Equal(t, "Dispute decided, settlement in progress", view.Label)
	assert.False(t, view.DisputePending)
}

func TestProjectRemainingAmount(t *testing.T) {
	funding := []domain.EscrowStatus{domain.StatusPendingPayment, domain.StatusPartiallyFunded, domain.StatusReadyToHarvest}
	for _, status := range funding {
		view := Project(contractIn(status), nil, nil, domain.RoleWholesaler, domain.Policy{})
		assert.True(t, view.RemainingAmount.Equal(decimal.NewFromInt(700_000)), status.String())
	}

	settled := []domain.EscrowStatus{domain.StatusFullyFunded, domain.StatusCompleted, domain.StatusDisputed, domain.StatusRefunded}
	for _, status := range settled {
		view := Project(contractIn(status), nil, nil, domain.RoleWholesaler, domain.Policy{})
		assert.True(t, view.RemainingAmount.IsZero(), status.String())
	}
}

// The rendered action set comes from the same guards the lifecycle services
// enforce.
func TestProjectActionsMatchGuards(t *testing.T) {
	view := Project(contractIn(domain.StatusFullyFunded), nil, nil, domain.RoleWholesaler, domain.Policy{})
	assert.Equal(t, []domain.Action{domain.ActionComplete, domain.ActionOpenDispute}, view.Actions)

	view = Project(contractIn(domain.StatusFullyFunded), nil, nil, domain.RoleFarmer, domain.Policy{})
	assert.Equal(t, []domain.Action{domain.ActionOpenDispute}, view.Actions)
}
