package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/session"
	disputedto "github.com/agrimarket/escrow-client/internal/usecase/dto/dispute"
	escrowdto "github.com/agrimarket/escrow-client/internal/usecase/dto/escrow"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEscrowUsecase struct {
	out *escrowdto.EscrowOutput
	err error
}

func (s *stubEscrowUsecase) PayDeposit(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	return s.out, s.err
}

func (s *stubEscrowUsecase) MarkReadyToHarvest(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	return s.out, s.err
}

func (s *stubEscrowUsecase) PayRemainder(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	return s.out, s.err
}

func (s *stubEscrowUsecase) CompleteEscrow(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	return s.out, s.err
}

func (s *stubEscrowUsecase) Refresh(ctx context.Context, input *escrowdto.RefreshInput) (*escrowdto.EscrowOutput, error) {
	return s.out, s.err
}

type stubDisputeUsecase struct {
	dispute    *disputedto.DisputeOutput
	resolution *disputedto.ResolutionOutput
	err        error
}

func (s *stubDisputeUsecase) CreateDispute(ctx context.Context, input *disputedto.CreateDisputeInput) (*disputedto.DisputeOutput, error) {
	return s.dispute, s.err
}

func (s *stubDisputeUsecase) ReviewDispute(ctx context.Context, input *disputedto.ReviewDisputeInput) (*disputedto.DisputeOutput, error) {
	return s.dispute, s.err
}

func (s *stubDisputeUsecase) GetDisputeByEscrow(ctx context.Context, escrowID string) (*disputedto.DisputeOutput, error) {
	if s.dispute == nil {
		return &disputedto.DisputeOutput{}, s.err
	}
	return s.dispute, s.err
}

func (s *stubDisputeUsecase) GetResolution(ctx context.Context, escrowID string) (*disputedto.ResolutionOutput, error) {
	if s.resolution == nil {
		return &disputedto.ResolutionOutput{}, s.err
	}
	return s.resolution, s.err
}

func setupRouter(escrows *stubEscrowUsecase, disputes *stubDisputeUsecase, role domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	sess := session.New(session.User{ID: "u1", Role: role}, "token", nil)
	NewHandler(escrows, disputes, sess, domain.Policy{}).Register(r)
	return r
}

func fundedOutput() *escrowdto.EscrowOutput {
	return escrowdto.NewEscrowOutput(&domain.EscrowContract{
		ID:           "e1",
		Origin:       domain.AuctionOrigin("a1"),
		TotalAmount:  decimal.NewFromInt(1_000_000),
		EscrowAmount: decimal.NewFromInt(1_000_000),
		Status:       domain.StatusFullyFunded,
	})
}

func TestGetEscrowView(t *testing.T) {
	r := setupRouter(&stubEscrowUsecase{out: fundedOutput()}, &stubDisputeUsecase{}, domain.RoleWholesaler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/escrows/e1/view", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var view ViewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Fully funded, confirm receipt to release funds", view.Label)
	assert.Equal(t, []domain.Action{domain.ActionComplete, domain.ActionOpenDispute}, view.Actions)
	assert.False(t, view.DisputePending)
}

func TestGuardViolationMapsToConflict(t *testing.T) {
	guardErr := &domain.GuardError{
		Action: domain.ActionPayDeposit,
		Status: domain.StatusCompleted,
		Role:   domain.RoleWholesaler,
		Err:    domain.ErrContractClosed,
	}
	r := setupRouter(&stubEscrowUsecase{err: guardErr}, &stubDisputeUsecase{}, domain.RoleWholesaler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/escrows/e1/deposit", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWrongRoleMapsToForbidden(t *testing.T) {
	guardErr := &domain.GuardError{
		Action: domain.ActionPayDeposit,
		Status: domain.StatusPendingPayment,
		Role:   domain.RoleFarmer,
		Err:    domain.ErrWrongRole,
	}
	r := setupRouter(&stubEscrowUsecase{err: guardErr}, &stubDisputeUsecase{}, domain.RoleFarmer)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/escrows/e1/deposit", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRemoteErrorMapsToUnprocessable(t *testing.T) {
	r := setupRouter(&stubEscrowUsecase{err: domain.NewRemoteError("insufficient wallet balance")}, &stubDisputeUsecase{}, domain.RoleWholesaler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/escrows/e1/remainder", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "insufficient wallet balance", resp.Error)
}

func TestTransportErrorMapsToBadGateway(t *testing.T) {
	transportErr := &domain.TransportError{Op: "complete_escrow", Err: context.DeadlineExceeded}
	r := setupRouter(&stubEscrowUsecase{err: transportErr}, &stubDisputeUsecase{}, domain.RoleWholesaler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/escrows/e1/complete", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCreateDisputeRequiresMessage(t *testing.T) {
	r := setupRouter(&stubEscrowUsecase{out: fundedOutput()}, &stubDisputeUsecase{}, domain.RoleWholesaler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/escrows/e1/dispute", bytes.NewBufferString(`{"actualAmount":"100"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetResolutionPendingRendersNull(t *testing.T) {
	r := setupRouter(&stubEscrowUsecase{out: fundedOutput()}, &stubDisputeUsecase{}, domain.RoleWholesaler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/escrows/e1/dispute/resolution", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Resolution *json.RawMessage `json:"resolution"`
		Pending    bool             `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Pending)
	assert.Nil(t, resp.Resolution)
}
