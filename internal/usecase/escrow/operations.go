package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/infrastructure/kafka"
	"github.com/agrimarket/escrow-client/internal/infrastructure/snapshot"
	escrowdto "github.com/agrimarket/escrow-client/internal/usecase/dto/escrow"
	"github.com/shopspring/decimal"
)

// EscrowOperation describes one guarded transition request: what is being
// asked, from which observed status, and how to dispatch it. All mutating
// operations go through processOperation so locking, audit, events and
// metrics stay in one place.
type EscrowOperation struct {
	EscrowID  string
	Action    domain.Action
	RequestID string
	OldStatus domain.EscrowStatus
	Amount    decimal.Decimal
	Dispatch  func(ctx context.Context, requestID string) (*domain.EscrowContract, error)
	CreatedAt time.Time
}

func (uc *DefaultEscrowUsecase) processOperation(ctx context.Context, op *EscrowOperation) (*domain.EscrowContract, error) {
	if !uc.Locker.TryAcquire(op.EscrowID) {
		uc.Metrics.RecordGuardViolation(string(op.Action), "in_flight")
		return nil, &domain.GuardError{
			Action: op.Action,
			Status: op.OldStatus,
			Role:   uc.Session.CurrentUser().Role,
			Err:    domain.ErrOperationInFlight,
		}
	}
	defer uc.Locker.Release(op.EscrowID)

	fresh, err := op.Dispatch(ctx, op.RequestID)
	if err != nil {
		uc.Metrics.RecordTransition(string(op.Action), "error")
		return nil, err
	}

	uc.Metrics.RecordTransition(string(op.Action), "ok")
	uc.recordTransition(ctx, op, fresh)
	uc.publishEscrowEvent(op, fresh)
	return fresh, nil
}

func (uc *DefaultEscrowUsecase) recordTransition(ctx context.Context, op *EscrowOperation, fresh *domain.EscrowContract) {
	if uc.Recorder == nil {
		return
	}
	event := snapshot.TransitionEvent{
		EscrowID:  op.EscrowID,
		RequestID: op.RequestID,
		Action:    string(op.Action),
		OldStatus: op.OldStatus.String(),
		NewStatus: fresh.Status.String(),
		ActorRole: string(uc.Session.CurrentUser().Role),
		Source:    "client",
		Timestamp: time.Now(),
	}
	if err := uc.Recorder.LogTransition(ctx, event); err != nil {
		slog.Error("failed to record escrow transition", "escrow_id", op.EscrowID, "action", op.Action, "error", err.Error())
	}
}

func (uc *DefaultEscrowUsecase) publishEscrowEvent(op *EscrowOperation, fresh *domain.EscrowContract) {
	if uc.Publisher == nil {
		return
	}
	go func(event kafka.EscrowEvent) {
		if err := uc.Publisher.PublishEscrow(event); err != nil {
			slog.Error("failed to publish escrow event", "escrow_id", event.EscrowID, "action", event.Action, "error", err.Error())
		}
	}(kafka.EscrowEvent{
		EscrowID:  op.EscrowID,
		RequestID: op.RequestID,
		Action:    string(op.Action),
		OldStatus: op.OldStatus.String(),
		NewStatus: fresh.Status.String(),
		Amount:    op.Amount.String(),
		ActorRole: string(uc.Session.CurrentUser().Role),
	})
}

// resyncAlreadyDone re-fetches the authoritative contract after the server
// reported an idempotent outcome (deposit already applied, already ready).
// The user flow resolves as success, not as an error.
func (uc *DefaultEscrowUsecase) resyncAlreadyDone(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	fresh, err := uc.Gateway.GetEscrow(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	out := escrowdto.NewEscrowOutput(fresh)
	out.AlreadyDone = true
	return out, nil
}
