package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// EscrowGateway is the remote marketplace contract for escrow lifecycle
// requests. Every mutating call returns the fresh authoritative contract
// snapshot; the client never mutates a local copy.
type EscrowGateway interface {
	GetEscrow(ctx context.Context, escrowID string) (*EscrowContract, error)
	GetEscrowByAuction(ctx context.Context, auctionID string) (*EscrowContract, error)
	GetEscrowByBuyRequest(ctx context.Context, buyRequestID string) (*EscrowContract, error)

	PayDeposit(ctx context.Context, escrowID, requestID string) (*EscrowContract, error)
	MarkReadyToHarvest(ctx context.Context, escrowID, requestID string) (*EscrowContract, error)
	PayRemainder(ctx context.Context, escrowID, requestID string, amount decimal.Decimal) (*EscrowContract, error)
	CompleteEscrow(ctx context.Context, escrowID, requestID string) (*EscrowContract, error)
}

// DisputeGateway is the remote contract for the dispute sub-workflow.
// Lookup methods return (nil, nil) when no record exists: absence of a
// dispute or resolution is an answer, not a failure.
type DisputeGateway interface {
	GetDispute(ctx context.Context, disputeID string) (*Dispute, error)
	GetDisputeByEscrow(ctx context.Context, escrowID string) (*Dispute, error)
	GetResolution(ctx context.Context, escrowID string) (*DisputeResolution, error)

	CreateDispute(ctx context.Context, escrowID, requestID string, claim *DisputeClaim, wholesalerCreated bool, attachmentKeys []string) (*Dispute, error)
	ReviewDispute(ctx context.Context, disputeID, requestID string, approve bool) (*Dispute, error)
}
