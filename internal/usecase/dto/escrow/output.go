package escrowdto

import (
	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/shopspring/decimal"
)

// EscrowOutput carries the fresh authoritative snapshot after an operation.
// RemainingAmount is derived from that snapshot, never from an older fetch.
type EscrowOutput struct {
	Contract        *domain.EscrowContract
	RemainingAmount decimal.Decimal

	// AlreadyDone marks the idempotent no-op outcomes ("already paid",
	// "already ready") so the caller can show a friendly note instead of
	// an error.
	AlreadyDone bool
}

func NewEscrowOutput(contract *domain.EscrowContract) *EscrowOutput {
	return &EscrowOutput{
		Contract:        contract,
		RemainingAmount: contract.RemainingAmount(),
	}
}
