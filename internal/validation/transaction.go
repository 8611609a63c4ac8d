// Package validation checks incoming transactions before they reach the
// matcher. Country and currency facts come from the ISO reference data in
// github.com/biter777/countries rather than a hand-kept table.
package validation

import (
	"strings"

	"github.com/biter777/countries"

	apperrors "lannisterpay/internal/errors"
	"lannisterpay/internal/models"
)

// ValidateTransaction applies the structural and semantic constraints on an
// evaluation request. It stops at the first violation, mirroring the
// abort-early behavior of the configuration parser.
func ValidateTransaction(tx *models.Transaction) error {
	if tx.Amount == nil || *tx.Amount < 0 {
		return apperrors.Validation("Amount is required and must be a non-negative number")
	}

	country, err := lookupCountry(tx.CurrencyCountry)
	if err != nil {
		return err
	}
	if _, err := lookupCountry(tx.PaymentEntity.Country); err != nil {
		return err
	}

	if !countrySupportsCurrency(country, strings.ToUpper(tx.Currency)) {
		return apperrors.Validation("%s does not support %s.", country.String(), tx.Currency)
	}

	if !models.IsEntity(tx.PaymentEntity.Type) {
		return apperrors.Validation("PaymentEntity Type must be one of [*, CREDIT-CARD, DEBIT-CARD, BANK-ACCOUNT, USSD, WALLET-ID]")
	}
	return nil
}

// lookupCountry resolves a 2- or 3-letter country code; 3-letter codes are
// normalized to their alpha-2 form by the reference library. The library
// resolves reserved user-assigned tokens such as "XX" to its None sentinel,
// which reports itself valid; those are invalid codes here.
func lookupCountry(code string) (countries.CountryCode, error) {
	c := countries.ByName(code)
	if !c.IsValid() || c == countries.None {
		return countries.Unknown, apperrors.Validation("Country Code: %s is invalid", code)
	}
	return c, nil
}

// secondaryCurrencies lists currencies in official circulation alongside a
// country's primary ISO currency. The reference library carries one currency
// per country; these territories accept another one too.
var secondaryCurrencies = map[countries.CountryCode][]string{
	countries.PA: {"USD"}, // balboa is pegged; USD circulates
	countries.EC: {"USD"},
	countries.SV: {"USD"},
	countries.TL: {"USD"},
	countries.ZW: {"USD"},
	countries.BT: {"INR"},
	countries.LS: {"ZAR"},
	countries.NA: {"ZAR"},
}

func countrySupportsCurrency(country countries.CountryCode, currency string) bool {
	if country.Currency().Alpha() == currency {
		return true
	}
	for _, c := range secondaryCurrencies[country] {
		if c == currency {
			return true
		}
	}
	return false
}

// SupportedCurrency reports whether code is a currency issued by at least
// one country in the reference data.
func SupportedCurrency(code string) bool {
	code = strings.ToUpper(code)
	for _, c := range countries.All() {
		if c.Currency().Alpha() == code {
			return true
		}
	}
	return false
}
