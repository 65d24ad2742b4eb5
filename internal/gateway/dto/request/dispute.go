package request

import "github.com/shopspring/decimal"

type CreateDisputeRequest struct {
	EscrowID            string          `json:"escrowId"`
	RequestID           string          `json:"requestId"`
	DisputeMessage      string          `json:"disputeMessage"`
	ActualAmount        decimal.Decimal `json:"actualAmount"`
	ActualGrade1Amount  decimal.Decimal `json:"actualGrade1Amount"`
	ActualGrade2Amount  decimal.Decimal `json:"actualGrade2Amount"`
	ActualGrade3Amount  decimal.Decimal `json:"actualGrade3Amount"`
	IsWholeSalerCreated bool            `json:"isWholeSalerCreated"`
	Attachments         []string        `json:"attachments"`
}

type ReviewDisputeRequest struct {
	DisputeID  string `json:"disputeId"`
	RequestID  string `json:"requestId"`
	IsApproved bool   `json:"isApproved"`
}
