package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "lannisterpay/internal/errors"
	"lannisterpay/internal/models"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name           string
		feeType        models.FeeType
		feeValue       string
		amount         float64
		bearsFee       bool
		wantFee        float64
		wantCharge     float64
		wantSettlement float64
	}{
		{
			name:           "flat fee",
			feeType:        models.FeeTypeFlat,
			feeValue:       "100",
			amount:         4000,
			bearsFee:       true,
			wantFee:        100,
			wantCharge:     4100,
			wantSettlement: 4000,
		},
		{
			name:           "percentage fee",
			feeType:        models.FeeTypePerc,
			feeValue:       "1.4",
			amount:         5000,
			bearsFee:       true,
			wantFee:        70,
			wantCharge:     5070,
			wantSettlement: 5000,
		},
		{
			name:           "flat plus percentage",
			feeType:        models.FeeTypeFlatPerc,
			feeValue:       "20:1.4",
			amount:         3500,
			bearsFee:       true,
			wantFee:        69,
			wantCharge:     3569,
			wantSettlement: 3500,
		},
		{
			name:           "customer does not bear the fee",
			feeType:        models.FeeTypeFlatPerc,
			feeValue:       "20:1.4",
			amount:         3500,
			bearsFee:       false,
			wantFee:        69,
			wantCharge:     3500,
			wantSettlement: 3431,
		},
		{
			name:           "zero amount",
			feeType:        models.FeeTypePerc,
			feeValue:       "1.4",
			amount:         0,
			bearsFee:       true,
			wantFee:        0,
			wantCharge:     0,
			wantSettlement: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := models.FeeRule{ID: "LNPY1223", FeeType: tt.feeType, FeeValue: tt.feeValue}
			tx := &models.Transaction{
				Amount:   &tt.amount,
				Customer: models.Customer{BearsFee: tt.bearsFee},
			}

			result, err := Compute(rule, tx)
			require.NoError(t, err)
			assert.Equal(t, "LNPY1223", result.AppliedFeeID)
			assert.Equal(t, tt.wantFee, result.AppliedFeeValue)
			assert.Equal(t, tt.wantCharge, result.ChargeAmount)
			assert.Equal(t, tt.wantSettlement, result.SettlementAmount)
		})
	}
}

// A fee type the parser cannot produce means a rule reached the store
// without validation; that is our bug, never the caller's.
func TestComputeUnknownFeeTypeIsInternal(t *testing.T) {
	amount := 100.0
	tx := &models.Transaction{Amount: &amount}

	_, err := Compute(models.FeeRule{ID: "LNPY0000", FeeType: "TIERED", FeeValue: "1"}, tx)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestComputeCorruptFeeValueIsInternal(t *testing.T) {
	amount := 100.0
	tx := &models.Transaction{Amount: &amount}

	tests := []struct {
		name string
		rule models.FeeRule
	}{
		{"flat", models.FeeRule{ID: "LNPY0001", FeeType: models.FeeTypeFlat, FeeValue: "abc"}},
		{"perc", models.FeeRule{ID: "LNPY0002", FeeType: models.FeeTypePerc, FeeValue: ""}},
		{"flat_perc", models.FeeRule{ID: "LNPY0003", FeeType: models.FeeTypeFlatPerc, FeeValue: "20"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.rule, tx)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
		})
	}
}
