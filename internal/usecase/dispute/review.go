package usecase

import (
	"context"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/infrastructure/kafka"
	"github.com/agrimarket/escrow-client/internal/infrastructure/snapshot"
	disputedto "github.com/agrimarket/escrow-client/internal/usecase/dto/dispute"
	"github.com/google/uuid"
)

// ReviewDispute is the counterpart's accept-or-reject of a pending claim.
// Only the non-claimant role may review, and only while the dispute is still
// pending; a decided dispute surfaces ErrAlreadyReviewed.
func (uc *DefaultDisputeUsecase) ReviewDispute(ctx context.Context, input *disputedto.ReviewDisputeInput) (*disputedto.DisputeOutput, error) {
	dispute, err := uc.Gateway.GetDispute(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}
	contract, err := uc.Escrows.GetEscrow(ctx, dispute.EscrowID)
	if err != nil {
		return nil, err
	}

	role := uc.Session.CurrentUser().Role
	if err := uc.allow(domain.ActionReviewDispute, contract, dispute, role); err != nil {
		return nil, err
	}

	if !uc.Locker.TryAcquire(dispute.EscrowID) {
		uc.Metrics.RecordGuardViolation(string(domain.ActionReviewDispute), "in_flight")
		return nil, &domain.GuardError{Action: domain.ActionReviewDispute, Status: contract.Status, Role: role, Err: domain.ErrOperationInFlight}
	}
	defer uc.Locker.Release(dispute.EscrowID)

	requestID := uuid.NewString()
	reviewed, err := uc.Gateway.ReviewDispute(ctx, input.DisputeID, requestID, input.Approve)
	if err != nil {
		uc.Metrics.RecordTransition(string(domain.ActionReviewDispute), "error")
		return nil, err
	}

	decision := "reject"
	if input.Approve {
		decision = "approve"
	}
	uc.Metrics.RecordTransition(string(domain.ActionReviewDispute), "ok")
	uc.Metrics.RecordDisputeReview(decision)
	uc.recordTransition(ctx, snapshot.TransitionEvent{
		EscrowID:  dispute.EscrowID,
		DisputeID: dispute.ID,
		RequestID: requestID,
		Action:    string(domain.ActionReviewDispute),
		OldStatus: dispute.Status.String(),
		NewStatus: reviewed.Status.String(),
		ActorRole: string(role),
		Source:    "client",
	})
	uc.publishDisputeEvent(kafka.DisputeEvent{
		DisputeID:    reviewed.ID,
		EscrowID:     reviewed.EscrowID,
		Status:       reviewed.Status.String(),
		ClaimantRole: string(reviewed.ClaimantRole()),
	})

	return &disputedto.DisputeOutput{Dispute: reviewed}, nil
}
