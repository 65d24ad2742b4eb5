package usecase

import (
	"context"
	"errors"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/infrastructure/kafka"
	"github.com/agrimarket/escrow-client/internal/infrastructure/locker"
	"github.com/agrimarket/escrow-client/internal/infrastructure/metrics"
	"github.com/agrimarket/escrow-client/internal/infrastructure/snapshot"
	"github.com/agrimarket/escrow-client/internal/infrastructure/storage"
	"github.com/agrimarket/escrow-client/internal/session"
	disputedto "github.com/agrimarket/escrow-client/internal/usecase/dto/dispute"
)

type DisputeUsecase interface {
	CreateDispute(ctx context.Context, input *disputedto.CreateDisputeInput) (*disputedto.DisputeOutput, error)
	ReviewDispute(ctx context.Context, input *disputedto.ReviewDisputeInput) (*disputedto.DisputeOutput, error)
	GetDisputeByEscrow(ctx context.Context, escrowID string) (*disputedto.DisputeOutput, error)
	GetResolution(ctx context.Context, escrowID string) (*disputedto.ResolutionOutput, error)
}

type DefaultDisputeUsecase struct {
	Escrows   domain.EscrowGateway
	Gateway   domain.DisputeGateway
	Session   *session.Session
	Locker    *locker.InFlightLocker
	Storage   storage.Storage
	Publisher kafka.EventPublisher
	Recorder  snapshot.TransitionRecorder
	Metrics   *metrics.EscrowMetrics
	Policy    domain.Policy
}

func NewDefaultDisputeUsecase(
	escrows domain.EscrowGateway,
	gateway domain.DisputeGateway,
	sess *session.Session,
	inFlight *locker.InFlightLocker,
	evidenceStorage storage.Storage,
	publisher kafka.EventPublisher,
	recorder snapshot.TransitionRecorder,
	escrowMetrics *metrics.EscrowMetrics,
	policy domain.Policy) *DefaultDisputeUsecase {

	return &DefaultDisputeUsecase{
		Escrows:   escrows,
		Gateway:   gateway,
		Session:   sess,
		Locker:    inFlight,
		Storage:   evidenceStorage,
		Publisher: publisher,
		Recorder:  recorder,
		Metrics:   escrowMetrics,
		Policy:    policy,
	}
}

func (uc *DefaultDisputeUsecase) allow(action domain.Action, contract *domain.EscrowContract, dispute *domain.Dispute, role domain.Role) error {
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
	case errors.Is(err, domain.ErrDisputeExists):
		return "dispute_exists"
	case errors.Is(err, domain.ErrAlreadyReviewed):
		return "already_reviewed"
	case errors.Is(err, domain.ErrClaimantReview):
		return "claimant_review"
	case errors.Is(err, domain.ErrOperationInFlight):
		return "in_flight"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "wrong_status"
	}
}
