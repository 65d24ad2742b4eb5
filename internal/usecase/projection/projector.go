package projection

import (
	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/shopspring/decimal"
)

// View is the UI-ready reconciliation of one escrow: a role-appropriate
// label, the amount still due, and the actions the caller may legally take.
type View struct {
	Label           string
	RemainingAmount decimal.Decimal
	Actions         []domain.Action
	DisputePending  bool
}

// Project derives the view from fresh snapshots. Pure function: the
// permitted-action set comes from the same guards the lifecycle services
// enforce, never from UI state. dispute and resolution may be nil.
func Project(contract *domain.EscrowContract, dispute *domain.Dispute, resolution *domain.DisputeResolution, role domain.Role, policy domain.Policy) View {
	return View{
		Label:           label(contract, dispute, resolution, role),
		RemainingAmount: remaining(contract),
		Actions:         domain.PermittedActions(contract, dispute, policy, role),
		DisputePending:  dispute != nil && dispute.Status.IsOpen() && resolution == nil,
	}
}

// remaining is the balance still due from the buyer. Once the escrow is
// fully funded nothing remains to pay.
func remaining(contract *domain.EscrowContract) decimal.Decimal {
	switch contract.Status {
	case domain.StatusPendingPayment, domain.StatusPartiallyFunded, domain.StatusReadyToHarvest:
		return contract.RemainingAmount()
	default:
		return decimal.Zero
	}
}

func label(contract *domain.EscrowContract, dispute *domain.Dispute, resolution *domain.DisputeResolution, role domain.Role) string {
	buyer := role == domain.RoleWholesaler

	switch contract.Status {
	case domain.StatusPendingPayment:
		if buyer {
			return "Awaiting your deposit"
		}
		return "Awaiting buyer deposit"
	case domain.StatusPartiallyFunded:
		if buyer {
			return "Deposit paid, awaiting harvest confirmation"
		}
		return "Deposit received, confirm when goods are ready"
	case domain.StatusReadyToHarvest:
		if buyer {
			return "Goods ready, remainder due"
		}
		return "Awaiting remainder payment"
	case domain.StatusFullyFunded:
		if dispute != nil && dispute.Status.IsOpen() {
			return "Dispute pending"
		}
		if buyer {
			return "Fully funded, confirm receipt to release funds"
		}
		return "Fully funded, awaiting release"
	case domain.StatusDisputed:
		switch {
		case resolution == nil:
			return "Dispute pending"
		case resolution.FinalDecision:
			return "Dispute decided, settlement in progress"
		default:
			return "Dispute under admin review"
		}
	case domain.StatusCompleted:
		if buyer {
			return "Completed, funds released to farmer"
		}
		return "Completed, funds released to you"
	case domain.StatusRefunded:
		return "Refunded to buyer"
	case domain.StatusPartialRefund:
		return "Partially refunded per dispute resolution"
	case domain.StatusCanceled:
		return "Canceled"
	default:
		return "Unknown status"
	}
}
