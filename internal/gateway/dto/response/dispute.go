package response

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/shopspring/decimal"
)

type DisputeStatusValue struct {
	Status domain.DisputeStatus
}

func (v *DisputeStatusValue) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	status, err := domain.ParseDisputeStatus(raw)
	if err != nil {
		return err
	}
	v.Status = status
	return nil
}

type DisputePayload struct {
	ID                  string          `json:"id"`
	EscrowID            string          `json:"escrowId"`
	DisputeMessage      string          `json:"disputeMessage"`
	ActualAmount        decimal.Decimal `json:"actualAmount"`
	ActualGrade1Amount  decimal.Decimal `json:"actualGrade1Amount"`
	ActualGrade2Amount  decimal.Decimal `json:"actualGrade2Amount"`
	ActualGrade3Amount  decimal.Decimal `json:"actualGrade3Amount"`
	Attachments         []string        `json:"attachments"`
	IsWholeSalerCreated bool            `json:"isWholeSalerCreated"`

	// The review endpoint still sends the status under a misspelled key.
	DisputeStatus *DisputeStatusValue `json:"disputeStatus"`
	DisputStatus  *DisputeStatusValue `json:"disputStatus"`
}

func (p *DisputePayload) status() (domain.DisputeStatus, error) {
	switch {
	case p.DisputeStatus != nil:
		return p.DisputeStatus.Status, nil
	case p.DisputStatus != nil:
		return p.DisputStatus.Status, nil
	default:
		return 0, fmt.Errorf("dispute %s payload carries no status field", p.ID)
	}
}

func (p *DisputePayload) ToDomain() (*domain.Dispute, error) {
	status, err := p.status()
	if err != nil {
		return nil, err
	}
	return &domain.Dispute{
		ID:                 p.ID,
		EscrowID:           p.EscrowID,
		Message:            p.DisputeMessage,
		ActualAmount:       p.ActualAmount,
		ActualGrade1Amount: p.ActualGrade1Amount,
		ActualGrade2Amount: p.ActualGrade2Amount,
		ActualGrade3Amount: p.ActualGrade3Amount,
		Attachments:        p.Attachments,
		WholesalerCreated:  p.IsWholeSalerCreated,
		Status:             status,
	}, nil
}

type ResolutionPayload struct {
	DisputeID       string          `json:"disputeId"`
	EscrowID        string          `json:"escrowId"`
	RefundAmount    decimal.Decimal `json:"refundAmount"`
	IsFinalDecision bool            `json:"isFinalDecision"`
	AdminNote       string          `json:"adminNote"`

	DisputeStatus *DisputeStatusValue `json:"disputeStatus"`
	DisputStatus  *DisputeStatusValue `json:"disputStatus"`
}

func (p *ResolutionPayload) ToDomain() (*domain.DisputeResolution, error) {
	resolution := &domain.DisputeResolution{
		DisputeID:     p.DisputeID,
		EscrowID:      p.EscrowID,
		RefundAmount:  p.RefundAmount,
		FinalDecision: p.IsFinalDecision,
		AdminNote:     p.AdminNote,
	}
	switch {
	case p.DisputeStatus != nil:
		resolution.Status = p.DisputeStatus.Status
	case p.DisputStatus != nil:
		resolution.Status = p.DisputStatus.Status
	default:
		return nil, fmt.Errorf("resolution for escrow %s carries no status field", p.EscrowID)
	}
	return resolution, nil
}
