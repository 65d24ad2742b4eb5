package kafka

type DisputeEvent struct {
	DisputeID    string `json:"dispute_id"`
	EscrowID     string `json:"escrow_id"`
	Status       string `json:"status"`
	ClaimantRole string `json:"claimant_role"`
	ActualAmount string `json:"actual_amount,omitempty"`
	RefundAmount string `json:"refund_amount,omitempty"`
}
