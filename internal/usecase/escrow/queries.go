package usecase

import (
	"context"
	"fmt"

	"github.com/agrimarket/escrow-client/internal/domain"
	escrowdto "github.com/agrimarket/escrow-client/internal/usecase/dto/escrow"
)

// Refresh re-fetches the authoritative contract. All guard flags downstream
// are re-derived from this snapshot, never from a locally mutated copy.
func (uc *DefaultEscrowUsecase) Refresh(ctx context.Context, input *escrowdto.RefreshInput) (*escrowdto.EscrowOutput, error) {
	var (
		contract *domain.EscrowContract
		err      error
	)
	switch {
	case input.EscrowID != "":
		contract, err = uc.Gateway.GetEscrow(ctx, input.EscrowID)
	case input.AuctionID != "":
		contract, err = uc.Gateway.GetEscrowByAuction(ctx, input.AuctionID)
	case input.BuyRequestID != "":
		contract, err = uc.Gateway.GetEscrowByBuyRequest(ctx, input.BuyRequestID)
	default:
		return nil, fmt.Errorf("refresh requires an escrow, auction or buy-request id")
	}
	if err != nil {
		return nil, err
	}
	return escrowdto.NewEscrowOutput(contract), nil
}
