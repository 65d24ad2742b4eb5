package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/infrastructure/kafka"
	"github.com/agrimarket/escrow-client/internal/infrastructure/snapshot"
	disputedto "github.com/agrimarket/escrow-client/internal/usecase/dto/dispute"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// CreateDispute files a discrepancy claim against a fully funded escrow.
// Evidence is uploaded to object storage first; the dispute request carries
// only the resulting object keys.
func (uc *DefaultDisputeUsecase) CreateDispute(ctx context.Context, input *disputedto.CreateDisputeInput) (*disputedto.DisputeOutput, error) {
	contract, err := uc.Escrows.GetEscrow(ctx, input.EscrowID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.Gateway.GetDisputeByEscrow(ctx, input.EscrowID)
	if err != nil {
		return nil, err
	}

	role := uc.Session.CurrentUser().Role
	if err := uc.allow(domain.ActionOpenDispute, contract, existing, role); err != nil {
		return nil, err
	}

	claim := &domain.DisputeClaim{
		Message:            input.Message,
		ActualAmount:       input.ActualAmount,
		ActualGrade1Amount: input.ActualGrade1Amount,
		ActualGrade2Amount: input.ActualGrade2Amount,
		ActualGrade3Amount: input.ActualGrade3Amount,
	}
	if err := claim.Validate(); err != nil {
		uc.Metrics.RecordGuardViolation(string(domain.ActionOpenDispute), "invalid_claim")
		return nil, &domain.GuardError{Action: domain.ActionOpenDispute, Status: contract.Status, Role: role, Err: err}
	}

	if !uc.Locker.TryAcquire(input.EscrowID) {
		uc.Metrics.RecordGuardViolation(string(domain.ActionOpenDispute), "in_flight")
		return nil, &domain.GuardError{Action: domain.ActionOpenDispute, Status: contract.Status, Role: role, Err: domain.ErrOperationInFlight}
	}
	defer uc.Locker.Release(input.EscrowID)

	attachmentKeys, err := uc.uploadAttachments(ctx, input.EscrowID, input.Attachments)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	dispute, err := uc.Gateway.CreateDispute(ctx, input.EscrowID, requestID, claim, role == domain.RoleWholesaler, attachmentKeys)
	if err != nil {
		uc.Metrics.RecordTransition(string(domain.ActionOpenDispute), "error")
		return nil, err
	}

	uc.Metrics.RecordTransition(string(domain.ActionOpenDispute), "ok")
	uc.Metrics.RecordDisputeCreated(string(dispute.ClaimantRole()))
	uc.recordTransition(ctx, snapshot.TransitionEvent{
		EscrowID:  input.EscrowID,
		DisputeID: dispute.ID,
		RequestID: requestID,
		Action:    string(domain.ActionOpenDispute),
		OldStatus: contract.Status.String(),
		NewStatus: domain.StatusDisputed.String(),
		ActorRole: string(role),
		Source:    "client",
	})
	uc.publishDisputeEvent(kafka.DisputeEvent{
		DisputeID:    dispute.ID,
		EscrowID:     dispute.EscrowID,
		Status:       dispute.Status.String(),
		ClaimantRole: string(dispute.ClaimantRole()),
		ActualAmount: dispute.ActualAmount.String(),
	})

	return &disputedto.DisputeOutput{Dispute: dispute}, nil
}

func (uc *DefaultDisputeUsecase) uploadAttachments(ctx context.Context, escrowID string, attachments []disputedto.AttachmentInput) ([]string, error) {
	if len(attachments) == 0 {
		return nil, nil
	}
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(attachments))
	for _, attachment := range attachments {
		objectName := fmt.Sprintf("disputes/%s/%s_%s", escrowID, idGenerator(), attachment.FileName)
		key, err := uc.Storage.Upload(ctx, objectName, bytes.NewReader(attachment.Data), int64(len(attachment.Data)), attachment.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload evidence %s: %w", attachment.FileName, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (uc *DefaultDisputeUsecase) recordTransition(ctx context.Context, event snapshot.TransitionEvent) {
	if uc.Recorder == nil {
		return
	}
	event.Timestamp = time.Now()
	if err := uc.Recorder.LogTransition(ctx, event); err != nil {
		slog.Error("failed to record dispute transition", "escrow_id", event.EscrowID, "action", event.Action, "error", err.Error())
	}
}

func (uc *DefaultDisputeUsecase) publishDisputeEvent(event kafka.DisputeEvent) {
	if uc.Publisher == nil {
		return
	}
	go func() {
		if err := uc.Publisher.PublishDispute(event); err != nil {
			slog.Error("failed to publish dispute event", "dispute_id", event.DisputeID, "error", err.Error())
		}
	}()
}
