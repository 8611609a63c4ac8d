package fees

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	apperrors "lannisterpay/internal/errors"
	"lannisterpay/internal/models"
	"lannisterpay/internal/validation"
)

// A configuration line looks like:
//
//	LNPY1223 NGN LOCL CREDIT-CARD(*) : APPLY FLAT_PERC 50:1.4
//
// Tokens are separated by single spaces; the ":" and "APPLY" tokens carry no
// information and are skipped by position.
var entityExpr = regexp.MustCompile(`(.*)\(([^)]+)\)`)

const (
	lineFormatMsg     = "fee configuration line must match <FEE-ID> <CURRENCY> <LOCALE> <ENTITY>(<ENTITY-PROPERTY>) : APPLY <FEE-TYPE> <FEE-VALUE>"
	flatPercFormatMsg = "FLAT_PERC fee type requires fee value to match [FLAT-VALUE]:[PERC-VALUE]"
)

// ParseSpecification turns a multi-line fee specification into a ranked rule
// set, most specific rules first. Validation aborts on the first offending
// line; nothing from the batch is accepted.
func ParseSpecification(spec string) ([]models.FeeRule, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, apperrors.Validation("Invalid request payload")
	}

	lines := strings.Split(strings.TrimSpace(spec), "\n")
	rules := make([]models.FeeRule, 0, len(lines))
	for _, line := range lines {
		rule, err := parseLine(strings.TrimSpace(line))
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	// Most specific first. The stable sort keeps line order within a rank,
	// which is what makes tie-breaking deterministic downstream.
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Rank > rules[j].Rank
	})
	return rules, nil
}

func parseLine(line string) (models.FeeRule, error) {
	parts := strings.Split(line, " ")
	if len(parts) < 8 {
		return models.FeeRule{}, apperrors.Validation(lineFormatMsg)
	}

	rule := models.FeeRule{
		ID:       parts[0],
		Currency: parts[1],
		Locale:   parts[2],
		FeeType:  models.FeeType(parts[6]),
		FeeValue: parts[7],
	}
	if m := entityExpr.FindStringSubmatch(parts[3]); m != nil {
		rule.Entity = m[1]
		rule.EntityProperty = m[2]
	}

	if err := validateRule(rule); err != nil {
		return models.FeeRule{}, err
	}
	rule.Rank = rule.SpecificityRank()
	return rule, nil
}

// validateRule checks fields in declaration order and stops at the first
// violation, so a line with several problems reports only the first one.
func validateRule(r models.FeeRule) error {
	if len(r.ID) < 8 {
		return apperrors.Validation("id length must be at least 8 characters long")
	}
	if len(r.ID) > 8 {
		return apperrors.Validation("id length must be less than or equal to 8 characters long")
	}
	if r.Currency != models.Wildcard && !validation.SupportedCurrency(r.Currency) {
		return apperrors.Validation("currency must be the wildcard or a valid ISO 4217 code")
	}
	if r.Locale != models.Wildcard && r.Locale != models.LocaleLocal && r.Locale != models.LocaleInternational {
		return apperrors.Validation("locale must be one of [*, LOCL, INTL]")
	}
	if !models.IsEntity(r.Entity) {
		return apperrors.Validation("entity must be one of [*, CREDIT-CARD, DEBIT-CARD, BANK-ACCOUNT, USSD, WALLET-ID]")
	}
	if r.EntityProperty == "" {
		return apperrors.Validation("entityProperty is required")
	}

	switch r.FeeType {
	case models.FeeTypeFlat, models.FeeTypePerc:
		v, err := strconv.ParseFloat(r.FeeValue, 64)
		if err != nil {
			return apperrors.Validation("feeValue must be a number")
		}
		if v < 0 {
			return apperrors.Validation("feeValue must be greater than or equal to 0")
		}
	case models.FeeTypeFlatPerc:
		if _, _, err := SplitFlatPerc(r.FeeValue); err != nil {
			return err
		}
	default:
		return apperrors.Validation("feeType must be one of [FLAT, FLAT_PERC, PERC]")
	}
	return nil
}

// SplitFlatPerc parses a FLAT_PERC fee value of the form "flat:percentage".
// Both parts must be present and numeric.
func SplitFlatPerc(value string) (flat, perc float64, err error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, 0, apperrors.Validation(flatPercFormatMsg)
	}
	flat, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, apperrors.Validation(flatPercFormatMsg)
	}
	perc, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, apperrors.Validation(flatPercFormatMsg)
	}
	return flat, perc, nil
}
