package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDisputeStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    DisputeStatus
		wantErr bool
	}{
		{name: "int", input: 0, want: DisputePending},
		{name: "json number", input: json.Number("3"), want: DisputeInAdminReview},
		{name: "numeric string", input: "4", want: DisputeResolved},
		{name: "label string", input: "IN_ADMIN_REVIEW", want: DisputeInAdminReview},
		{name: "label string lowercase", input: "approved", want: DisputeApproved},
		{name: "out of range", input: 5, wantErr: true},
		{name: "nil", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDisputeStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisputeStatusPredicates(t *testing.T) {
	assert.True(t, DisputePending.IsOpen())
	assert.True(t, DisputeApproved.IsOpen())
	assert.True(t, DisputeRejected.IsOpen())
	assert.True(t, DisputeInAdminReview.IsOpen())
	assert.False(t, DisputeResolved.IsOpen())

	assert.True(t, DisputePending.BlocksCompletion())
	assert.True(t, DisputeInAdminReview.BlocksCompletion())
	assert.False(t, DisputeApproved.BlocksCompletion())
	assert.False(t, DisputeRejected.BlocksCompletion())
	assert.False(t, DisputeResolved.BlocksCompletion())
}

func TestDisputeRoles(t *testing.T) {
	byWholesaler := &Dispute{WholesalerCreated: true}
	assert.Equal(t, RoleWholesaler, byWholesaler.ClaimantRole())
	assert.Equal(t, RoleFarmer, byWholesaler.ReviewerRole())

	byFarmer := &Dispute{WholesalerCreated: false}
	assert.Equal(t, RoleFarmer, byFarmer.ClaimantRole())
	assert.Equal(t, RoleWholesaler, byFarmer.ReviewerRole())
}

func TestDisputeClaimValidate(t *testing.T) {
	tests := []struct {
		name    string
		claim   DisputeClaim
		wantErr bool
	}{
		{
			name: "valid partial grading",
			claim: DisputeClaim{
				Message:            "two crates arrived crushed",
				ActualAmount:       decimal.NewFromInt(350),
				ActualGrade1Amount: decimal.NewFromInt(200),
				ActualGrade2Amount: decimal.NewFromInt(100),
			},
		},
		{
			name: "grades exactly equal actual",
			claim: DisputeClaim{
				Message:            "full breakdown",
				ActualAmount:       decimal.NewFromInt(350),
				ActualGrade1Amount: decimal.NewFromInt(200),
				ActualGrade2Amount: decimal.NewFromInt(100),
				ActualGrade3Amount: decimal.NewFromInt(50),
			},
		},
		{
			name: "grades exceed actual",
			claim: DisputeClaim{
				Message:            "bad math",
				ActualAmount:       decimal.NewFromInt(300),
				ActualGrade1Amount: decimal.NewFromInt(200),
				ActualGrade2Amount: decimal.NewFromInt(150),
			},
			wantErr: true,
		},
		{
			name: "missing message",
			claim: DisputeClaim{
				Message:      "   ",
				ActualAmount: decimal.NewFromInt(10),
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			claim: DisputeClaim{
				Message:      "negative",
				ActualAmount: decimal.NewFromInt(-1),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.claim.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
