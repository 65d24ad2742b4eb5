package usecase

import (
	"context"

	disputedto "github.com/agrimarket/escrow-client/internal/usecase/dto/dispute"
)

// GetDisputeByEscrow returns the active dispute, or an output with a nil
// dispute when none exists. Absence is an answer, not a failure.
func (uc *DefaultDisputeUsecase) GetDisputeByEscrow(ctx context.Context, escrowID string) (*disputedto.DisputeOutput, error) {
	dispute, err := uc.Gateway.GetDisputeByEscrow(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	return &disputedto.DisputeOutput{Dispute: dispute}, nil
}

// GetResolution returns the admin outcome; a nil resolution means the
// dispute is still undecided.
func (uc *DefaultDisputeUsecase) GetResolution(ctx context.Context, escrowID string) (*disputedto.ResolutionOutput, error) {
	resolution, err := uc.Gateway.GetResolution(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	return &disputedto.ResolutionOutput{Resolution: resolution}, nil
}
