package models

// Wildcard matches any transaction value for a rule field.
const Wildcard = "*"

// FeeType identifies the formula used to compute a fee.
type FeeType string

const (
	FeeTypeFlat     FeeType = "FLAT"
	FeeTypePerc     FeeType = "PERC"
	FeeTypeFlatPerc FeeType = "FLAT_PERC"
)

// Locale values a rule can constrain a transaction to.
const (
	LocaleLocal         = "LOCL"
	LocaleInternational = "INTL"
)

// Entity categories a payment instrument can belong to.
const (
	EntityCreditCard  = "CREDIT-CARD"
	EntityDebitCard   = "DEBIT-CARD"
	EntityBankAccount = "BANK-ACCOUNT"
	EntityUSSD        = "USSD"
	EntityWalletID    = "WALLET-ID"
)

// Entities lists every supported payment-instrument category, wildcard included.
var Entities = []string{
	Wildcard,
	EntityCreditCard,
	EntityDebitCard,
	EntityBankAccount,
	EntityUSSD,
	EntityWalletID,
}

// FeeRule is a single fee configuration entry. The four matchable fields
// (Currency, Locale, Entity, EntityProperty) each hold either the wildcard
// or a concrete value. FeeValue keeps the raw token from the configuration
// line; for FLAT_PERC it is "flat:percentage".
type FeeRule struct {
	ID             string  `json:"id"`
	Currency       string  `json:"currency"`
	Locale         string  `json:"locale"`
	Entity         string  `json:"entity"`
	EntityProperty string  `json:"entityProperty"`
	FeeType        FeeType `json:"feeType"`
	FeeValue       string  `json:"feeValue"`
	Rank           int     `json:"rank"`
}

// SpecificityRank counts the matchable fields holding a concrete value.
// A fully wildcarded rule ranks 0, a fully concrete one ranks 4. Rule ID,
// fee type and fee value never contribute.
func (r FeeRule) SpecificityRank() int {
	rank := 0
	for _, field := range []string{r.Currency, r.Locale, r.Entity, r.EntityProperty} {
		if field != Wildcard {
			rank++
		}
	}
	return rank
}

// IsEntity reports whether s is one of the supported entity categories
// (the wildcard counts).
func IsEntity(s string) bool {
	for _, e := range Entities {
		if s == e {
			return true
		}
	}
	return false
}
