package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(refresh session.RefreshFunc) *session.Session {
	return session.New(session.User{ID: "buyer-1", Role: domain.RoleWholesaler}, "token-1", refresh)
}

func newTestClient(t *testing.T, handler http.Handler, refresh session.RefreshFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, testSession(refresh), nil)
}

func TestGetEscrowDecodesSnapshot(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/escrows/e1", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"isSuccess":true,"data":{
			"id":"e1","auctionId":"a1","farmerId":"farmer-1","winnerId":"buyer-1",
			"totalAmount":"1000000","escrowAmount":"300000","escrowStatus":2}}`)
	}), nil)

	contract, err := client.GetEscrow(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReadyToHarvest, contract.Status)
	assert.Equal(t, "700000", contract.RemainingAmount().String())
}

// isSuccess=false is a hard failure even when the HTTP status is 200.
func TestEnvelopeFailureOnHTTP200(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"isSuccess":false,"error":"deposit already paid"}`)
	}), nil)

	_, err := client.PayDeposit(context.Background(), "e1", "req-1")
	require.Error(t, err)

	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	assert.False(t, domain.IsTransportFailure(err))
}

func TestUnauthorizedRefreshesOnce(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"isSuccess":true,"data":{"id":"e1","auctionId":"a1","escrowStatus":0,"totalAmount":"100","escrowAmount":"0"}}`)
	})
	refreshed := false
	client := newTestClient(t, handler, func(ctx context.Context) (string, error) {
		refreshed = true
		return "token-2", nil
	})

	contract, err := client.GetEscrow(context.Background(), "e1")
	require.NoError(t, err)
	assert.True(t, refreshed)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, domain.StatusPendingPayment, contract.Status)
}

func TestRepeatedUnauthorizedIsNotRetriedAgain(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"isSuccess":false,"error":"unauthorized"}`)
	})
	client := newTestClient(t, handler, func(ctx context.Context) (string, error) {
		return "token-2", nil
	})

	_, err := client.GetEscrow(context.Background(), "e1")
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second, testSession(nil), nil)

	_, err := client.CompleteEscrow(context.Background(), "e1", "req-1")
	require.Error(t, err)
	assert.True(t, domain.IsTransportFailure(err))
	assert.False(t, domain.IsGuardViolation(err))
}

func TestUndecodableErrorBodyIsTransportError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `<html>upstream exploded</html>`)
	}), nil)

	_, err := client.GetEscrow(context.Background(), "e1")
	require.Error(t, err)
	assert.True(t, domain.IsTransportFailure(err))
}

func TestGetDisputeByEscrowAbsenceIsNotAnError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"isSuccess":false,"error":"dispute not found"}`)
	}), nil)

	dispute, err := client.GetDisputeByEscrow(context.Background(), "e1")
	require.NoError(t, err)
	assert.Nil(t, dispute)
}

func TestGetResolutionPendingIsNil(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"isSuccess":false,"error":"resolution not found"}`)
	}), nil)

	resolution, err := client.GetResolution(context.Background(), "e1")
	require.NoError(t, err)
	assert.Nil(t, resolution)
}

// The review endpoint answers with the status under a misspelled key; the
// client must still decode it.
func TestReviewDisputeToleratesMisspelledStatusKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/disputes/d1/review", r.URL.Path)
		fmt.Fprint(w, `{"isSuccess":true,"data":{"id":"d1","escrowId":"e1","isWholeSalerCreated":true,"disputStatus":"1"}}`)
	}), nil)

	dispute, err := client.ReviewDispute(context.Background(), "d1", "req-1", true)
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeApproved, dispute.Status)
	assert.Equal(t, domain.RoleWholesaler, dispute.ClaimantRole())
}

func TestMalformedSnapshotIsTransportError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Both origin references set: the payload cannot be mapped.
		fmt.Fprint(w, `{"isSuccess":true,"data":{"id":"e1","auctionId":"a1","buyRequestId":"br1","escrowStatus":0}}`)
	}), nil)

	_, err := client.GetEscrow(context.Background(), "e1")
	require.Error(t, err)
	assert.True(t, domain.IsTransportFailure(err))

	var remoteErr *domain.RemoteError
	assert.False(t, errors.As(err, &remoteErr))
}
