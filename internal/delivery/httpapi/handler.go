package httpapi

import (
	"errors"
	"net/http"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/session"
	disputeuc "github.com/agrimarket/escrow-client/internal/usecase/dispute"
	disputedto "github.com/agrimarket/escrow-client/internal/usecase/dto/dispute"
	escrowdto "github.com/agrimarket/escrow-client/internal/usecase/dto/escrow"
	escrowuc "github.com/agrimarket/escrow-client/internal/usecase/escrow"
	"github.com/agrimarket/escrow-client/internal/usecase/projection"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler is the thin local facade the UI talks to. It validates nothing
// itself: every rule lives in the usecases and the domain guards.
type Handler struct {
	Escrows  escrowuc.EscrowUsecase
	Disputes disputeuc.DisputeUsecase
	Session  *session.Session
	Policy   domain.Policy
}

func NewHandler(escrows escrowuc.EscrowUsecase, disputes disputeuc.DisputeUsecase, sess *session.Session, policy domain.Policy) *Handler {
	return &Handler{Escrows: escrows, Disputes: disputes, Session: sess, Policy: policy}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/escrows/:id", h.GetEscrow)
	r.GET("/escrows/:id/view", h.GetEscrowView)
	r.POST("/escrows/:id/deposit", h.PayDeposit)
	r.POST("/escrows/:id/ready", h.MarkReady)
	r.POST("/escrows/:id/remainder", h.PayRemainder)
	r.POST("/escrows/:id/complete", h.Complete)
	r.POST("/escrows/:id/dispute", h.CreateDispute)
	r.GET("/escrows/:id/dispute", h.GetDispute)
	r.GET("/escrows/:id/dispute/resolution", h.GetResolution)
	r.POST("/disputes/:id/review", h.ReviewDispute)
}

type EscrowResponse struct {
	Contract        *domain.EscrowContract `json:"contract"`
	RemainingAmount decimal.Decimal        `json:"remainingAmount"`
	AlreadyDone     bool                   `json:"alreadyDone,omitempty"`
}

func escrowResponse(out *escrowdto.EscrowOutput) EscrowResponse {
	return EscrowResponse{
		Contract:        out.Contract,
		RemainingAmount: out.RemainingAmount,
		AlreadyDone:     out.AlreadyDone,
	}
}

func (h *Handler) GetEscrow(c *gin.Context) {
	out, err := h.Escrows.Refresh(c.Request.Context(), &escrowdto.RefreshInput{EscrowID: c.Param("id")})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, escrowResponse(out))
}

type ViewResponse struct {
	Label           string          `json:"label"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Actions         []domain.Action `json:"permittedActions"`
	DisputePending  bool            `json:"disputePending"`
}

func (h *Handler) GetEscrowView(c *gin.Context) {
	escrowID := c.Param("id")
	out, err := h.Escrows.Refresh(c.Request.Context(), &escrowdto.RefreshInput{EscrowID: escrowID})
	if err != nil {
		h.renderError(c, err)
		return
	}
	disputeOut, err := h.Disputes.GetDisputeByEscrow(c.Request.Context(), escrowID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	resolutionOut, err := h.Disputes.GetResolution(c.Request.Context(), escrowID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	view := projection.Project(
		out.Contract,
		disputeOut.Dispute,
		resolutionOut.Resolution,
		h.Session.CurrentUser().Role,
		h.Policy,
	)
	c.JSON(http.StatusOK, ViewResponse{
		Label:           view.Label,
		RemainingAmount: view.RemainingAmount,
		Actions:         view.Actions,
		DisputePending:  view.DisputePending,
	})
}

func (h *Handler) PayDeposit(c *gin.Context) {
	out, err := h.Escrows.PayDeposit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, escrowResponse(out))
}

func (h *Handler) MarkReady(c *gin.Context) {
	out, err := h.Escrows.MarkReadyToHarvest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, escrowResponse(out))
}

func (h *Handler) PayRemainder(c *gin.Context) {
	out, err := h.Escrows.PayRemainder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, escrowResponse(out))
}

func (h *Handler) Complete(c *gin.Context) {
	out, err := h.Escrows.CompleteEscrow(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, escrowResponse(out))
}

type CreateDisputeBody struct {
	Message            string                       `json:"message" binding:"required"`
	ActualAmount       decimal.Decimal              `json:"actualAmount"`
	ActualGrade1Amount decimal.Decimal              `json:"actualGrade1Amount"`
	ActualGrade2Amount decimal.Decimal              `json:"actualGrade2Amount"`
	ActualGrade3Amount decimal.Decimal              `json:"actualGrade3Amount"`
	Attachments        []CreateDisputeAttachmentRef `json:"attachments"`
}

type CreateDisputeAttachmentRef struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

func (h *Handler) CreateDispute(c *gin.Context) {
	var body CreateDisputeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	input := &disputedto.CreateDisputeInput{
		EscrowID:           c.Param("id"),
		Message:            body.Message,
		ActualAmount:       body.ActualAmount,
		ActualGrade1Amount: body.ActualGrade1Amount,
		ActualGrade2Amount: body.ActualGrade2Amount,
		ActualGrade3Amount: body.ActualGrade3Amount,
	}
	for _, attachment := range body.Attachments {
		input.Attachments = append(input.Attachments, disputedto.AttachmentInput{
			FileName:    attachment.FileName,
			ContentType: attachment.ContentType,
			Data:        attachment.Data,
		})
	}
	out, err := h.Disputes.CreateDispute(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Dispute)
}

func (h *Handler) GetDispute(c *gin.Context) {
	out, err := h.Disputes.GetDisputeByEscrow(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dispute": out.Dispute})
}

func (h *Handler) GetResolution(c *gin.Context) {
	out, err := h.Disputes.GetResolution(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	if out.Pending() {
		c.JSON(http.StatusOK, gin.H{"resolution": nil, "pending": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resolution": out.Resolution, "pending": false})
}

type ReviewDisputeBody struct {
	Approve bool `json:"approve"`
}

func (h *Handler) ReviewDispute(c *gin.Context) {
	var body ReviewDisputeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	out, err := h.Disputes.ReviewDispute(c.Request.Context(), &disputedto.ReviewDisputeInput{
		DisputeID: c.Param("id"),
		Approve:   body.Approve,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Dispute)
}

// renderError maps the error taxonomy to transport codes: guard violations
// never left the client (409), remote rejections carry the server reason
// (422), transport failures mean unknown outcome and the UI must re-fetch
// (502).
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case domain.IsGuardViolation(err):
		status := http.StatusConflict
		if errors.Is(err, domain.ErrWrongRole) || errors.Is(err, domain.ErrClaimantReview) {
			status = http.StatusForbidden
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case domain.IsTransportFailure(err):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		var remoteErr *domain.RemoteError
		if errors.As(err, &remoteErr) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: remoteErr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
