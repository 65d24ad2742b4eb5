package usecase

import (
	"context"
	"errors"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/infrastructure/kafka"
	"github.com/agrimarket/escrow-client/internal/infrastructure/locker"
	"github.com/agrimarket/escrow-client/internal/infrastructure/metrics"
	"github.com/agrimarket/escrow-client/internal/infrastructure/snapshot"
	"github.com/agrimarket/escrow-client/internal/session"
	escrowdto "github.com/agrimarket/escrow-client/internal/usecase/dto/escrow"
)

type EscrowUsecase interface {
	PayDeposit(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error)
	MarkReadyToHarvest(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error)
	PayRemainder(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error)
	CompleteEscrow(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error)
	Refresh(ctx context.Context, input *escrowdto.RefreshInput) (*escrowdto.EscrowOutput, error)
}

type DefaultEscrowUsecase struct {
	Gateway   domain.EscrowGateway
	Disputes  domain.DisputeGateway
	Session   *session.Session
	Locker    *locker.InFlightLocker
	Publisher kafka.EventPublisher
	Recorder  snapshot.TransitionRecorder
	Metrics   *metrics.EscrowMetrics
	Policy    domain.Policy
}

func NewDefaultEscrowUsecase(
	gateway domain.EscrowGateway,
	disputes domain.DisputeGateway,
	sess *session.Session,
	inFlight *locker.InFlightLocker,
	publisher kafka.EventPublisher,
	recorder snapshot.TransitionRecorder,
	escrowMetrics *metrics.EscrowMetrics,
	policy domain.Policy) *DefaultEscrowUsecase {

	return &DefaultEscrowUsecase{
		Gateway:   gateway,
		Disputes:  disputes,
		Session:   sess,
		Locker:    inFlight,
		Publisher: publisher,
		Recorder:  recorder,
		Metrics:   escrowMetrics,
		Policy:    policy,
	}
}

func (uc *DefaultEscrowUsecase) allow(action domain.Action, contract *domain.EscrowContract, dispute *domain.Dispute, role domain.Role) error {
	if err := domain.Allow(action, contract, dispute, uc.Policy, role); err != nil {
		uc.Metrics.RecordGuardViolation(string(action), guardReason(err))
		return err
	}
	return nil
}

func guardReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrContractClosed):
		return "contract_closed"
	case errors.Is(err, domain.ErrWrongRole):
		return "wrong_role"
	case errors.Is(err, domain.ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, domain.ErrDisputeExists):
		return "dispute_exists"
	case errors.Is(err, domain.ErrDisputeBlocks):
		return "dispute_blocks"
	case errors.Is(err, domain.ErrAlreadyReviewed):
		return "already_reviewed"
	case errors.Is(err, domain.ErrClaimantReview):
		return "claimant_review"
	case errors.Is(err, domain.ErrOperationInFlight):
		return "in_flight"
	default:
		return "wrong_status"
	}
}
