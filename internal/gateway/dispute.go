package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/gateway/dto/request"
	"github.com/agrimarket/escrow-client/internal/gateway/dto/response"
)

func (c *Client) GetDispute(ctx context.Context, disputeID string) (*domain.Dispute, error) {
	var payload response.DisputePayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/disputes/%s", disputeID), "get_dispute", nil, &payload); err != nil {
		return nil, err
	}
	return c.toDispute("get_dispute", &payload)
}

// GetDisputeByEscrow returns (nil, nil) when the escrow has no dispute.
func (c *Client) GetDisputeByEscrow(ctx context.Context, escrowID string) (*domain.Dispute, error) {
	var payload response.DisputePayload
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/escrows/%s/dispute", escrowID), "get_dispute_by_escrow", nil, &payload)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c.toDispute("get_dispute_by_escrow", &payload)
}

// GetResolution returns (nil, nil) while the dispute is still undecided.
func (c *Client) GetResolution(ctx context.Context, escrowID string) (*domain.DisputeResolution, error) {
	var payload response.ResolutionPayload
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/escrows/%s/dispute/resolution", escrowID), "get_resolution", nil, &payload)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resolution, err := payload.ToDomain()
	if err != nil {
		return nil, &domain.TransportError{Op: "get_resolution", Err: err}
	}
	return resolution, nil
}

func (c *Client) CreateDispute(ctx context.Context, escrowID, requestID string, claim *domain.DisputeClaim, wholesalerCreated bool, attachmentKeys []string) (*domain.Dispute, error) {
	var payload response.DisputePayload
	body := request.CreateDisputeRequest{
		EscrowID:            escrowID,
		RequestID:           requestID,
		DisputeMessage:      claim.Message,
		ActualAmount:        claim.ActualAmount,
		ActualGrade1Amount:  claim.ActualGrade1Amount,
		ActualGrade2Amount:  claim.ActualGrade2Amount,
		ActualGrade3Amount:  claim.ActualGrade3Amount,
		IsWholeSalerCreated: wholesalerCreated,
		Attachments:         attachmentKeys,
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/escrows/%s/dispute", escrowID), "create_dispute", body, &payload); err != nil {
		return nil, err
	}
	return c.toDispute("create_dispute", &payload)
}

func (c *Client) ReviewDispute(ctx context.Context, disputeID, requestID string, approve bool) (*domain.Dispute, error) {
	var payload response.DisputePayload
	body := request.ReviewDisputeRequest{DisputeID: disputeID, RequestID: requestID, IsApproved: approve}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/disputes/%s/review", disputeID), "review_dispute", body, &payload); err != nil {
		return nil, err
	}
	return c.toDispute("review_dispute", &payload)
}

func (c *Client) toDispute(endpoint string, payload *response.DisputePayload) (*domain.Dispute, error) {
	dispute, err := payload.ToDomain()
	if err != nil {
		return nil, &domain.TransportError{Op: endpoint, Err: err}
	}
	return dispute, nil
}

var _ domain.DisputeGateway = (*Client)(nil)
