package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EscrowStatus int

const (
	StatusPendingPayment  EscrowStatus = 0
	StatusPartiallyFunded EscrowStatus = 1
	StatusReadyToHarvest  EscrowStatus = 2
	StatusFullyFunded     EscrowStatus = 3
	StatusCompleted       EscrowStatus = 4
	StatusDisputed        EscrowStatus = 5
	StatusRefunded        EscrowStatus = 6
	StatusPartialRefund   EscrowStatus = 7
	StatusCanceled        EscrowStatus = 8
)

var escrowStatusNames = map[EscrowStatus]string{
	StatusPendingPayment:  "PENDING_PAYMENT",
	StatusPartiallyFunded: "PARTIALLY_FUNDED",
	StatusReadyToHarvest:  "READY_TO_HARVEST",
	StatusFullyFunded:     "FULLY_FUNDED",
	StatusCompleted:       "COMPLETED",
	StatusDisputed:        "DISPUTED",
	StatusRefunded:        "REFUNDED",
	StatusPartialRefund:   "PARTIAL_REFUND",
	StatusCanceled:        "CANCELED",
}

func (s EscrowStatus) String() string {
	if name, ok := escrowStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(s))
}

// Terminal statuses accept no further transitions from this client.
func (s EscrowStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRefunded, StatusPartialRefund, StatusCanceled:
		return true
	}
	return false
}

// ParseEscrowStatus is the single normalization boundary for escrow status
// values. The gateway returns the status as a JSON number from most endpoints
// and as a numeric or label string from the legacy ones; every shape must map
// to the same canonical code before any guard sees it.
func ParseEscrowStatus(v any) (EscrowStatus, error) {
	switch raw := v.(type) {
	case EscrowStatus:
		return checkEscrowStatus(int(raw))
	case int:
		return checkEscrowStatus(raw)
	case int64:
		return checkEscrowStatus(int(raw))
	case float64:
		if raw != float64(int(raw)) {
			return 0, fmt.Errorf("non-integral escrow status %v", raw)
		}
		return checkEscrowStatus(int(raw))
	case json.Number:
		n, err := raw.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid escrow status %q: %w", raw.String(), err)
		}
		return checkEscrowStatus(int(n))
	case string:
		trimmed := strings.TrimSpace(raw)
		if n, err := strconv.Atoi(trimmed); err == nil {
			return checkEscrowStatus(n)
		}
		label := strings.ToUpper(strings.ReplaceAll(trimmed, " ", "_"))
		for status, name := range escrowStatusNames {
			if name == label {
				return status, nil
			}
		}
		return 0, fmt.Errorf("unknown escrow status label %q", raw)
	case nil:
		return 0, fmt.Errorf("missing escrow status")
	default:
		return 0, fmt.Errorf("unsupported escrow status type %T", v)
	}
}

func checkEscrowStatus(code int) (EscrowStatus, error) {
	if code < int(StatusPendingPayment) || code > int(StatusCanceled) {
		return 0, fmt.Errorf("escrow status code %d out of range", code)
	}
	return EscrowStatus(code), nil
}

type OriginKind string

const (
	OriginAuction    OriginKind = "AUCTION"
	OriginBuyRequest OriginKind = "BUY_REQUEST"
)

// TradeOrigin identifies the trade an escrow settles: exactly one auction win
// or one accepted buy-request.
type TradeOrigin struct {
	Kind OriginKind
	ID   string
}

func AuctionOrigin(id string) TradeOrigin {
	return TradeOrigin{Kind: OriginAuction, ID: id}
}

func BuyRequestOrigin(id string) TradeOrigin {
	return TradeOrigin{Kind: OriginBuyRequest, ID: id}
}

// NewTradeOrigin builds the origin from the two nullable wire fields and
// rejects payloads that set both or neither.
func NewTradeOrigin(auctionID, buyRequestID string) (TradeOrigin, error) {
	switch {
	case auctionID != "" && buyRequestID != "":
		return TradeOrigin{}, fmt.Errorf("escrow references both auction %s and buy-request %s", auctionID, buyRequestID)
	case auctionID != "":
		return AuctionOrigin(auctionID), nil
	case buyRequestID != "":
		return BuyRequestOrigin(buyRequestID), nil
	default:
		return TradeOrigin{}, fmt.Errorf("escrow references neither auction nor buy-request")
	}
}

type EscrowContract struct {
	ID     string
	Origin TradeOrigin

	FarmerID       string
	WinnerID       string
	FarmerWalletID string
	WinnerWalletID string

	TotalAmount         decimal.Decimal
	FeeAmount           decimal.Decimal
	EscrowAmount        decimal.Decimal
	SellerReceiveAmount decimal.Decimal

	Status EscrowStatus

	PaymentTransactionID  string
	PaymentAt             *time.Time
	ReleasedTransactionID string
	ReleasedAt            *time.Time
	RefundTransactionID   string
	RefundAt              *time.Time
}

// RemainingAmount is always derived from the current snapshot, never cached
// from an older fetch.
func (c *EscrowContract) RemainingAmount() decimal.Decimal {
	return c.TotalAmount.Sub(c.EscrowAmount)
}

// ValidateAmounts checks the money fields for internal consistency: the
// escrowed deposit can never exceed the trade value, and once the contract is
// fully funded the farmer's net must equal total minus fee. A snapshot that
// breaks either is corrupt and must not reach guards or display.
func (c *EscrowContract) ValidateAmounts() error {
	if c.EscrowAmount.GreaterThan(c.TotalAmount) {
		return fmt.Errorf("escrow amount %s exceeds total amount %s", c.EscrowAmount, c.TotalAmount)
	}
	if c.Status >= StatusFullyFunded {
		net := c.TotalAmount.Sub(c.FeeAmount)
		if !c.SellerReceiveAmount.Equal(net) {
			return fmt.Errorf("seller receive amount %s does not equal total %s minus fee %s", c.SellerReceiveAmount, c.TotalAmount, c.FeeAmount)
		}
	}
	return nil
}

// Policy holds the transition rules that are deliberately configurable.
type Policy struct {
	// RequireDepositBeforeReady tightens the ready-to-harvest guard to
	// demand a confirmed deposit. Default keeps the relaxed rule that
	// tolerates payment-settlement latency.
	RequireDepositBeforeReady bool
}
