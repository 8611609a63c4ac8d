package models

import "encoding/json"

// Transaction is a fee-evaluation request. Transactions are transient: they
// are validated, matched against the rule set and discarded; nothing here is
// ever persisted.
type Transaction struct {
	ID              FlexString    `json:"ID,omitempty"`
	Amount          *float64      `json:"Amount"`
	Currency        string        `json:"Currency"`
	CurrencyCountry string        `json:"CurrencyCountry"`
	Customer        Customer      `json:"Customer"`
	PaymentEntity   PaymentEntity `json:"PaymentEntity"`
}

type Customer struct {
	ID           FlexString `json:"ID,omitempty"`
	EmailAddress string     `json:"EmailAddress,omitempty"`
	FullName     string     `json:"FullName,omitempty"`
	BearsFee     bool       `json:"BearsFee"`
}

// PaymentEntity describes the instrument paying for the transaction. The
// optional identifying attributes (ID, Issuer, Brand, Number, SixID) form
// the candidate set an entityProperty rule field is matched against.
type PaymentEntity struct {
	ID      FlexString `json:"ID,omitempty"`
	Issuer  string     `json:"Issuer,omitempty"`
	Brand   string     `json:"Brand,omitempty"`
	Number  FlexString `json:"Number,omitempty"`
	SixID   FlexString `json:"SixID,omitempty"`
	Type    string     `json:"Type"`
	Country string     `json:"Country"`
}

// PropertyCandidates returns the non-empty identifying attributes of the
// payment entity, in a fixed order.
func (p PaymentEntity) PropertyCandidates() []string {
	candidates := make([]string, 0, 5)
	for _, v := range []string{string(p.ID), p.Issuer, p.Brand, string(p.Number), string(p.SixID)} {
		if v != "" {
			candidates = append(candidates, v)
		}
	}
	return candidates
}

// FeeResult is the outcome of evaluating a transaction against the rule set.
type FeeResult struct {
	AppliedFeeID     string  `json:"AppliedFeeID"`
	AppliedFeeValue  float64 `json:"AppliedFeeValue"`
	ChargeAmount     float64 `json:"ChargeAmount"`
	SettlementAmount float64 `json:"SettlementAmount"`
}

// FlexString accepts a JSON string or number and keeps its literal text, so
// card numbers and six-digit issuer IDs compare the same whether the client
// quoted them or not.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(data)
	return nil
}

func (s FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}
