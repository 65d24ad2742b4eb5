package usecase

import (
	"context"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	escrowdto "github.com/agrimarket/escrow-client/internal/usecase/dto/escrow"
	"github.com/google/uuid"
)

// PayRemainder requests the remaining 70% balance. The amount is recomputed
// from the snapshot fetched inside this call so a stale contract from an
// older fetch can never set the charge.
func (uc *DefaultEscrowUsecase) PayRemainder(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	contract, err := uc.Gateway.GetEscrow(ctx, escrowID)
	if err != nil {
		return nil, err
	}

	role := uc.Session.CurrentUser().Role
	if err := uc.allow(domain.ActionPayRemainder, contract, nil, role); err != nil {
		return nil, err
	}

	remaining := contract.RemainingAmount()
	op := &EscrowOperation{
		EscrowID:  escrowID,
		Action:    domain.ActionPayRemainder,
		RequestID: uuid.NewString(),
		OldStatus: contract.Status,
		Amount:    remaining,
		Dispatch: func(ctx context.Context, requestID string) (*domain.EscrowContract, error) {
			return uc.Gateway.PayRemainder(ctx, escrowID, requestID, remaining)
		},
		CreatedAt: time.Now(),
	}

	fresh, err := uc.processOperation(ctx, op)
	if err != nil {
		return nil, err
	}
	return escrowdto.NewEscrowOutput(fresh), nil
}
