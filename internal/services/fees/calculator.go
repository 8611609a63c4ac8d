package fees

import (
	"strconv"

	apperrors "lannisterpay/internal/errors"
	"lannisterpay/internal/models"
)

// Compute applies the matched rule's fee formula to the transaction and
// produces the charge and settlement breakdown. The fee is added to the
// charge only when the customer bears it; the settlement is always the
// charge minus the fee.
//
// A rule with a fee type or value that cannot be interpreted here was
// persisted without passing parser validation. That is an invariant
// violation, reported as an internal fault and never as client input error.
func Compute(rule models.FeeRule, tx *models.Transaction) (models.FeeResult, error) {
	if tx.Amount == nil {
		return models.FeeResult{}, apperrors.Internal("transaction reached fee computation without an amount")
	}
	amount := *tx.Amount

	var fee float64
	switch rule.FeeType {
	case models.FeeTypeFlat:
		v, err := strconv.ParseFloat(rule.FeeValue, 64)
		if err != nil {
			return models.FeeResult{}, apperrors.Internal("rule %s has non-numeric FLAT fee value %q", rule.ID, rule.FeeValue)
		}
		fee = v
	case models.FeeTypePerc:
		v, err := strconv.ParseFloat(rule.FeeValue, 64)
		if err != nil {
			return models.FeeResult{}, apperrors.Internal("rule %s has non-numeric PERC fee value %q", rule.ID, rule.FeeValue)
		}
		fee = v * amount / 100
	case models.FeeTypeFlatPerc:
		flat, perc, err := SplitFlatPerc(rule.FeeValue)
		if err != nil {
			return models.FeeResult{}, apperrors.Internal("rule %s has malformed FLAT_PERC fee value %q", rule.ID, rule.FeeValue)
		}
		fee = flat + perc*amount/100
	default:
		return models.FeeResult{}, apperrors.Internal("rule %s has unknown fee type %q", rule.ID, rule.FeeType)
	}

	charge := amount
	if tx.Customer.BearsFee {
		charge = amount + fee
	}
	return models.FeeResult{
		AppliedFeeID:     rule.ID,
		AppliedFeeValue:  fee,
		ChargeAmount:     charge,
		SettlementAmount: charge - fee,
	}, nil
}
