package fees

import (
	"strings"

	"github.com/biter777/countries"

	apperrors "lannisterpay/internal/errors"
	"lannisterpay/internal/models"
)

// Field names used for no-match diagnostics.
const (
	fieldCurrency       = "currency"
	fieldLocale         = "locale"
	fieldEntity         = "entity"
	fieldEntityProperty = "entityProperty"
)

// Match scans the rule set and returns the most specific rule matching the
// transaction. Every rule field must either be the wildcard or equal the
// corresponding transaction value; entityProperty matches against the set of
// identifying attributes on the payment entity rather than a single field.
//
// Rules of equal specificity are tied; the earliest one in storage order
// wins, which keeps selection deterministic for a fixed rule set.
func Match(tx *models.Transaction, rules []models.FeeRule) (models.FeeRule, error) {
	locale := transactionLocale(tx)
	candidates := tx.PaymentEntity.PropertyCandidates()

	var (
		best         models.FeeRule
		bestRank     = -1
		lastMismatch string
	)
	for _, rule := range rules {
		if field, ok := ruleMatches(rule, tx, locale, candidates); !ok {
			lastMismatch = field
			continue
		}
		if rank := rule.SpecificityRank(); rank > bestRank {
			best = rule
			bestRank = rank
		}
	}
	if bestRank < 0 {
		return models.FeeRule{}, noMatchError(tx, locale, lastMismatch)
	}
	return best, nil
}

// ruleMatches reports whether the rule covers the transaction; on a miss it
// also names the first field that failed, in matching order.
func ruleMatches(rule models.FeeRule, tx *models.Transaction, locale string, candidates []string) (string, bool) {
	if rule.Currency != models.Wildcard && rule.Currency != tx.Currency {
		return fieldCurrency, false
	}
	if rule.Locale != models.Wildcard && rule.Locale != locale {
		return fieldLocale, false
	}
	if rule.Entity != models.Wildcard && rule.Entity != tx.PaymentEntity.Type {
		return fieldEntity, false
	}
	if rule.EntityProperty != models.Wildcard && !contains(candidates, rule.EntityProperty) {
		return fieldEntityProperty, false
	}
	return "", true
}

func noMatchError(tx *models.Transaction, locale, lastMismatch string) error {
	switch lastMismatch {
	case fieldCurrency:
		return apperrors.NotFound("No fee configuration for %s transactions.", tx.Currency)
	case fieldLocale:
		return apperrors.NotFound("No fee configuration for %s transactions.", locale)
	case fieldEntity:
		return apperrors.NotFound("No fee configuration for %s payment entities.", tx.PaymentEntity.Type)
	default:
		return apperrors.NotFound("No fee configuration for this transaction.")
	}
}

// transactionLocale derives LOCL or INTL from whether the settlement country
// equals the payment instrument's country, after normalizing both to alpha-2.
func transactionLocale(tx *models.Transaction) string {
	if normalizeCountry(tx.CurrencyCountry) == normalizeCountry(tx.PaymentEntity.Country) {
		return models.LocaleLocal
	}
	return models.LocaleInternational
}

// Tokens the reference library cannot place, including the None sentinel it
// assigns to reserved codes like "XX", keep their literal form so two
// distinct unknown tokens never read as the same country.
func normalizeCountry(code string) string {
	if c := countries.ByName(code); c.IsValid() && c != countries.None {
		return c.Alpha2()
	}
	return strings.ToUpper(code)
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
