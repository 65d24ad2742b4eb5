package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/gateway/dto/request"
	"github.com/agrimarket/escrow-client/internal/gateway/dto/response"
	"github.com/shopspring/decimal"
)

func (c *Client) GetEscrow(ctx context.Context, escrowID string) (*domain.EscrowContract, error) {
	return c.fetchEscrow(ctx, fmt.Sprintf("/escrows/%s", escrowID), "get_escrow")
}

func (c *Client) GetEscrowByAuction(ctx context.Context, auctionID string) (*domain.EscrowContract, error) {
	return c.fetchEscrow(ctx, fmt.Sprintf("/escrows/by-auction/%s", auctionID), "get_escrow_by_auction")
}

func (c *Client) GetEscrowByBuyRequest(ctx context.Context, buyRequestID string) (*domain.EscrowContract, error) {
	return c.fetchEscrow(ctx, fmt.Sprintf("/escrows/by-buy-request/%s", buyRequestID), "get_escrow_by_buy_request")
}

func (c *Client) fetchEscrow(ctx context.Context, path, endpoint string) (*domain.EscrowContract, error) {
	var payload response.EscrowPayload
	if err := c.do(ctx, http.MethodGet, path, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	return c.toContract(endpoint, &payload)
}

func (c *Client) PayDeposit(ctx context.Context, escrowID, requestID string) (*domain.EscrowContract, error) {
	var payload response.EscrowPayload
	body := request.PayDepositRequest{EscrowID: escrowID, RequestID: requestID}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/escrows/%s/deposit", escrowID), "pay_deposit", body, &payload); err != nil {
		return nil, err
	}
	return c.toContract("pay_deposit", &payload)
}

func (c *Client) MarkReadyToHarvest(ctx context.Context, escrowID, requestID string) (*domain.EscrowContract, error) {
	var payload response.EscrowPayload
	body := request.MarkReadyRequest{EscrowID: escrowID, RequestID: requestID}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/escrows/%s/ready", escrowID), "mark_ready", body, &payload); err != nil {
		return nil, err
	}
	return c.toContract("mark_ready", &payload)
}

func (c *Client) PayRemainder(ctx context.Context, escrowID, requestID string, amount decimal.Decimal) (*domain.EscrowContract, error) {
	var payload response.EscrowPayload
	body := request.PayRemainderRequest{EscrowID: escrowID, RequestID: requestID, Amount: amount}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/escrows/%s/remainder", escrowID), "pay_remainder", body, &payload); err != nil {
		return nil, err
	}
	return c.toContract("pay_remainder", &payload)
}

func (c *Client) CompleteEscrow(ctx context.Context, escrowID, requestID string) (*domain.EscrowContract, error) {
	var payload response.EscrowPayload
	body := request.CompleteEscrowRequest{EscrowID: escrowID, RequestID: requestID}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/escrows/%s/complete", escrowID), "complete_escrow", body, &payload); err != nil {
		return nil, err
	}
	return c.toContract("complete_escrow", &payload)
}

func (c *Client) toContract(endpoint string, payload *response.EscrowPayload) (*domain.EscrowContract, error) {
	contract, err := payload.ToDomain()
	if err != nil {
		return nil, &domain.TransportError{Op: endpoint, Err: err}
	}
	return contract, nil
}

var _ domain.EscrowGateway = (*Client)(nil)
