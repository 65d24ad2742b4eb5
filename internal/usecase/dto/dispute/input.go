package disputedto

import "github.com/shopspring/decimal"

// AttachmentInput is one piece of evidence to upload before the dispute is
// filed.
type AttachmentInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

type CreateDisputeInput struct {
	EscrowID           string
	Message            string
	ActualAmount       decimal.Decimal
	ActualGrade1Amount decimal.Decimal
	ActualGrade2Amount decimal.Decimal
	ActualGrade3Amount decimal.Decimal
	Attachments        []AttachmentInput
}

type ReviewDisputeInput struct {
	DisputeID string
	Approve   bool
}
