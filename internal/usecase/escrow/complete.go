package usecase

import (
	"context"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	escrowdto "github.com/agrimarket/escrow-client/internal/usecase/dto/escrow"
	"github.com/google/uuid"
)

// CompleteEscrow releases funds to the farmer. Irreversible; callers must
// collect explicit user confirmation before invoking this. The guard
// re-checks the freshly fetched contract/dispute pair: an undecided dispute
// blocks release.
func (uc *DefaultEscrowUsecase) CompleteEscrow(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	contract, err := uc.Gateway.GetEscrow(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	dispute, err := uc.Disputes.GetDisputeByEscrow(ctx, escrowID)
	if err != nil {
		return nil, err
	}

	role := uc.Session.CurrentUser().Role
	if err := uc.allow(domain.ActionComplete, contract, dispute, role); err != nil {
		return nil, err
	}

	op := &EscrowOperation{
		EscrowID:  escrowID,
		Action:    domain.ActionComplete,
		RequestID: uuid.NewString(),
		OldStatus: contract.Status,
		Amount:    contract.SellerReceiveAmount,
		Dispatch: func(ctx context.Context, requestID string) (*domain.EscrowContract, error) {
			return uc.Gateway.CompleteEscrow(ctx, escrowID, requestID)
		},
		CreatedAt: time.Now(),
	}

	fresh, err := uc.processOperation(ctx, op)
	if err != nil {
		return nil, err
	}
	return escrowdto.NewEscrowOutput(fresh), nil
}
