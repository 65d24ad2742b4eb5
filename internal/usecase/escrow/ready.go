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

// MarkReadyToHarvest is the farmer's confirmation that goods are ready.
// Unless policy tightens it, the guard tolerates a still-unconfirmed deposit
// so harvest confirmation is not blocked on payment-settlement latency.
func (uc *DefaultEscrowUsecase) MarkReadyToHarvest(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	contract, err := uc.Gateway.GetEscrow(ctx, escrowID)
	if err != nil {
		return nil, err
	}

	role := uc.Session.CurrentUser().Role
	if err := uc.allow(domain.ActionMarkReady, contract, nil, role); err != nil {
		return nil, err
	}

	op := &EscrowOperation{
		EscrowID:  escrowID,
		Action:    domain.ActionMarkReady,
		RequestID: uuid.NewString(),
		OldStatus: contract.Status,
		Dispatch: func(ctx context.Context, requestID string) (*domain.EscrowContract, error) {
			return uc.Gateway.MarkReadyToHarvest(ctx, escrowID, requestID)
		},
		CreatedAt: time.Now(),
	}

	fresh, err := uc.processOperation(ctx, op)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyReady) {
			slog.Info("escrow already marked ready", "escrow_id", escrowID)
			return uc.resyncAlreadyDone(ctx, escrowID)
		}
		return nil, err
	}
	return escrowdto.NewEscrowOutput(fresh), nil
}
