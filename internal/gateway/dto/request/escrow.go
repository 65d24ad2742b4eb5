package request

import "github.com/shopspring/decimal"

type PayDepositRequest struct {
	EscrowID  string `json:"escrowId"`
	RequestID string `json:"requestId"`
}

type MarkReadyRequest struct {
	EscrowID  string `json:"escrowId"`
	RequestID string `json:"requestId"`
}

type PayRemainderRequest struct {
	EscrowID  string          `json:"escrowId"`
	RequestID string          `json:"requestId"`
	Amount    decimal.Decimal `json:"amount"`
}

type CompleteEscrowRequest struct {
	EscrowID  string `json:"escrowId"`
	RequestID string `json:"requestId"`
}
