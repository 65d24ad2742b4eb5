package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	escrowdto "github.com/agrimarket/escrow-client/internal/usecase/dto/escrow"
	"github.com/google/uuid"
)

// PayDeposit requests the initial 30% payment moving the escrow out of
// PendingPayment. The request is idempotent: a retry against an escrow that
// already reached PartiallyFunded resolves as "already paid", never as a
// double charge.
func (uc *DefaultEscrowUsecase) PayDeposit(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	contract, err := uc.Gateway.GetEscrow(ctx, escrowID)
	if err != nil {
		return nil, err
	}

	if contract.Status == domain.StatusPartiallyFunded {
		slog.Info("deposit already paid", "escrow_id", escrowID)
		out := escrowdto.NewEscrowOutput(contract)
		out.AlreadyDone = true
		return out, nil
	}

	role := uc.Session.CurrentUser().Role
	if err := uc.allow(domain.ActionPayDeposit, contract, nil, role); err != nil {
		return nil, err
	}

	op := &EscrowOperation{
		EscrowID:  escrowID,
		Action:    domain.ActionPayDeposit,
		RequestID: uuid.NewString(),
		OldStatus: contract.Status,
		Amount:    contract.EscrowAmount,
		Dispatch: func(ctx context.Context, requestID string) (*domain.EscrowContract, error) {
			return uc.Gateway.PayDeposit(ctx, escrowID, requestID)
		},
		CreatedAt: time.Now(),
	}

	fresh, err := uc.processOperation(ctx, op)
	if err != nil {
		// Stale-status race: the server already applied an earlier deposit.
		// Re-sync and surface success instead of failing the user flow.
		if errors.Is(err, domain.ErrAlreadyPaid) {
			slog.Info("deposit raced with an earlier request", "escrow_id", escrowID)
			return uc.resyncAlreadyDone(ctx, escrowID)
		}
		return nil, err
	}
	return escrowdto.NewEscrowOutput(fresh), nil
}
