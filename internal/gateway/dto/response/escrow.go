package response

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/shopspring/decimal"
)

// EscrowStatusValue decodes the status field regardless of wire shape: most
// endpoints send a JSON number, the legacy ones a numeric or label string.
type EscrowStatusValue struct {
	Status domain.EscrowStatus
}

func (v *EscrowStatusValue) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	status, err := domain.ParseEscrowStatus(raw)
	if err != nil {
		return err
	}
	v.Status = status
	return nil
}

type EscrowPayload struct {
	ID                    string            `json:"id"`
	AuctionID             string            `json:"auctionId"`
	BuyRequestID          string            `json:"buyRequestId"`
	FarmerID              string            `json:"farmerId"`
	WinnerID              string            `json:"winnerId"`
	FarmerWalletID        string            `json:"farmerWalletId"`
	WinnerWalletID        string            `json:"winnerWalletId"`
	TotalAmount           decimal.Decimal   `json:"totalAmount"`
	FeeAmount             decimal.Decimal   `json:"feeAmount"`
	EscrowAmount          decimal.Decimal   `json:"escrowAmount"`
	SellerReceiveAmount   decimal.Decimal   `json:"sellerReceiveAmount"`
	EscrowStatus          EscrowStatusValue `json:"escrowStatus"`
	PaymentTransactionID  string            `json:"paymentTransactionId"`
	PaymentAt             *time.Time        `json:"paymentAt"`
	ReleasedTransactionID string            `json:"releasedTransactionId"`
	ReleasedAt            *time.Time        `json:"releasedAt"`
	RefundTransactionID   string            `json:"refundTransactionId"`
	RefundAt              *time.Time        `json:"refundAt"`
}

func (p *EscrowPayload) ToDomain() (*domain.EscrowContract, error) {
	origin, err := domain.NewTradeOrigin(p.AuctionID, p.BuyRequestID)
	if err != nil {
		return nil, err
	}
	contract := &domain.EscrowContract{
		ID:                    p.ID,
		Origin:                origin,
		FarmerID:              p.FarmerID,
		WinnerID:              p.WinnerID,
		FarmerWalletID:        p.FarmerWalletID,
		WinnerWalletID:        p.WinnerWalletID,
		TotalAmount:           p.TotalAmount,
		FeeAmount:             p.FeeAmount,
		EscrowAmount:          p.EscrowAmount,
		SellerReceiveAmount:   p.SellerReceiveAmount,
		Status:                p.EscrowStatus.Status,
		PaymentTransactionID:  p.PaymentTransactionID,
		PaymentAt:             p.PaymentAt,
		ReleasedTransactionID: p.ReleasedTransactionID,
		ReleasedAt:            p.ReleasedAt,
		RefundTransactionID:   p.RefundTransactionID,
		RefundAt:              p.RefundAt,
	}
	if err := contract.ValidateAmounts(); err != nil {
		return nil, err
	}
	return contract, nil
}
