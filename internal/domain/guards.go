package domain

import "fmt"

// Action is a role-gated transition request the client may send.
type Action string

const (
	ActionPayDeposit    Action = "PAY_DEPOSIT"
	ActionMarkReady     Action = "MARK_READY_TO_HARVEST"
	ActionPayRemainder  Action = "PAY_REMAINDER"
	ActionComplete      Action = "COMPLETE_ESCROW"
	ActionOpenDispute   Action = "OPEN_DISPUTE"
	ActionReviewDispute Action = "REVIEW_DISPUTE"
)

var allActions = []Action{
	ActionPayDeposit,
	ActionMarkReady,
	ActionPayRemainder,
	ActionComplete,
	ActionOpenDispute,
	ActionReviewDispute,
}

// Allow checks whether role may request action against the current contract
// and dispute snapshot. It is the only place transition preconditions live;
// both the lifecycle services and the view projector go through it.
// dispute may be nil when the escrow has no active dispute.
func Allow(action Action, contract *EscrowContract, dispute *Dispute, policy Policy, role Role) error {
	deny := func(reason error) error {
		return &GuardError{Action: action, Status: contract.Status, Role: role, Err: reason}
	}

	if contract.Status.IsTerminal() {
		return deny(ErrContractClosed)
	}

	switch action {
	case ActionPayDeposit:
		if role != RoleWholesaler {
			return deny(ErrWrongRole)
		}
		if contract.Status == StatusPartiallyFunded {
			return deny(ErrAlreadyPaid)
		}
		if contract.Status != StatusPendingPayment {
			return deny(fmt.Errorf("deposit requires status %s", StatusPendingPayment))
		}
		return nil

	case ActionMarkReady:
		if role != RoleFarmer {
			return deny(ErrWrongRole)
		}
		if policy.RequireDepositBeforeReady {
			if contract.Status != StatusPartiallyFunded {
				return deny(fmt.Errorf("ready-to-harvest requires status %s", StatusPartiallyFunded))
			}
			return nil
		}
		if contract.Status != StatusPendingPayment && contract.Status != StatusPartiallyFunded {
			return deny(fmt.Errorf("ready-to-harvest requires status %s or %s", StatusPendingPayment, StatusPartiallyFunded))
		}
		return nil

	case ActionPayRemainder:
		if role != RoleWholesaler {
			return deny(ErrWrongRole)
		}
		if contract.Status != StatusReadyToHarvest {
			return deny(fmt.Errorf("remainder requires status %s", StatusReadyToHarvest))
		}
		return nil

	case ActionComplete:
		if role != RoleWholesaler {
			return deny(ErrWrongRole)
		}
		if contract.Status != StatusFullyFunded {
			return deny(fmt.Errorf("completion requires status %s", StatusFullyFunded))
		}
		if dispute != nil && dispute.Status.BlocksCompletion() {
			return deny(ErrDisputeBlocks)
		}
		return nil

	case ActionOpenDispute:
		if contract.Status != StatusFullyFunded {
			return deny(fmt.Errorf("dispute requires status %s", StatusFullyFunded))
		}
		if dispute != nil && dispute.Status.IsOpen() {
			return deny(ErrDisputeExists)
		}
		return nil

	case ActionReviewDispute:
		if dispute == nil {
			return deny(ErrNotFound)
		}
		if dispute.Status != DisputePending {
			return deny(ErrAlreadyReviewed)
		}
		if role == dispute.ClaimantRole() {
			return deny(ErrClaimantReview)
		}
		if role != dispute.ReviewerRole() {
			return deny(ErrWrongRole)
		}
		return nil

	default:
		return deny(fmt.Errorf("unknown action"))
	}
}

// PermittedActions is what the view layer renders. It is derived from the
// same guards the lifecycle services enforce, never from UI state.
func PermittedActions(contract *EscrowContract, dispute *Dispute, policy Policy, role Role) []Action {
	permitted := make([]Action, 0, len(allActions))
	for _, action := range allActions {
		if Allow(action, contract, dispute, policy, role) == nil {
			permitted = append(permitted, action)
		}
	}
	return permitted
}
