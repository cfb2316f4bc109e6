/**
 * @description
 * Core financial records for the insights-service: accounts, transactions,
 * liabilities and recurring streams as delivered by the ingestion service.
 * These are immutable snapshots; the detectors only ever read them.
 */
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AccountType classifies the top-level account class.
type AccountType string

const (
	AccountDepository AccountType = "depository"
	AccountCredit     AccountType = "credit"
	AccountLoan       AccountType = "loan"
	AccountInvestment AccountType = "investment"
)

// Account is one bank, credit or loan account at a point in time.
type Account struct {
	ID               string      `json:"id"`
	Name             string      `json:"name,omitempty"`
	Type             AccountType `json:"type"`
	Subtype          string      `json:"subtype"` // 'checking', 'savings', 'credit card', 'money market', 'hsa', ...
	CurrentBalance   float64     `json:"current_balance"`
	AvailableBalance float64     `json:"available_balance"`
	CreditLimit      *float64    `json:"credit_limit,omitempty"`
	Currency         string      `json:"currency"`
}

// IsChecking reports whether this is a checking account.
func (a Account) IsChecking() bool {
	return a.Type == AccountDepository && strings.EqualFold(a.Subtype, "checking")
}

// IsSavingsLike reports whether this account counts toward savings signals.
func (a Account) IsSavingsLike() bool {
	switch strings.ToLower(a.Subtype) {
	case "savings", "money market", "hsa":
		return true
	}
	return false
}

// Date is a calendar date with day granularity, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

// Transaction is one posted or pending movement on an account.
// Amount sign convention: positive = outflow/debit, negative = inflow/credit.
type Transaction struct {
	ID               string  `json:"id"`
	AccountID        string  `json:"account_id"`
	Date             Date    `json:"date"`
	Amount           float64 `json:"amount"`
	Description      string  `json:"description"`
	MerchantName     string  `json:"merchant_name,omitempty"` // empty when the merchant is unknown
	PrimaryCategory  string  `json:"primary_category"`
	DetailedCategory string  `json:"detailed_category,omitempty"`
	Pending          bool    `json:"pending"`
}

// APR is one annual-percentage-rate entry on a liability.
type APR struct {
	Type       string  `json:"apr_type"` // e.g. 'purchase_apr', 'cash_apr'
	Percentage float64 `json:"percentage"`
}

// Liability carries credit/loan servicing facts for one account.
// Zero or one per credit account; absence means "unknown", never a
// failing condition for any detector.
type Liability struct {
	AccountID         string  `json:"account_id"`
	APRs              []APR   `json:"aprs,omitempty"`
	MinimumPayment    float64 `json:"minimum_payment"` // 0 when unknown
	LastPaymentAmount float64 `json:"last_payment_amount"`
	IsOverdue         bool    `json:"is_overdue"`
	StatementBalance  float64 `json:"statement_balance"`
}

// RecurringStream is an externally supplied recurring-payment stream
// record. The subscription detector trusts active weekly/biweekly/monthly
// streams ahead of its own cadence analysis.
type RecurringStream struct {
	AccountID    string  `json:"account_id,omitempty"`
	MerchantName string  `json:"merchant_name"`
	Status       string  `json:"status"`    // 'active' or 'inactive'
	Frequency    string  `json:"frequency"` // 'WEEKLY', 'BIWEEKLY', 'MONTHLY', 'ANNUALLY', 'UNKNOWN'
	LastAmount   float64 `json:"last_amount"`
	LastDate     Date    `json:"last_date"`
}

// ErrMalformedSnapshot is returned when the inbound record set violates
// the invariants the ingestion service is supposed to enforce.
var ErrMalformedSnapshot = errors.New("snapshot violates input invariants")

// Snapshot is the structurally validated record set for a single user at
// one point in time. It is the sole input to signal detection.
type Snapshot struct {
	UserID       string            `json:"user_id"`
	AsOf         Date              `json:"as_of"`
	Accounts     []Account         `json:"accounts"`
	Transactions []Transaction     `json:"transactions"`
	Liabilities  []Liability       `json:"liabilities,omitempty"`
	Streams      []RecurringStream `json:"recurring_streams,omitempty"`
}

// Validate enforces the inbound invariants: a non-empty account list and
// referential integrity from transactions and liabilities to accounts.
// Detectors assume this has passed and never re-check.
func (s Snapshot) Validate() error {
	if len(s.Accounts) == 0 {
		return fmt.Errorf("%w: account list is empty", ErrMalformedSnapshot)
	}
	known := make(map[string]struct{}, len(s.Accounts))
	for _, a := range s.Accounts {
		if a.ID == "" {
			return fmt.Errorf("%w: account with empty id", ErrMalformedSnapshot)
		}
		known[a.ID] = struct{}{}
	}
	for _, tx := range s.Transactions {
		if _, ok := known[tx.AccountID]; !ok {
			return fmt.Errorf("%w: transaction %s references unknown account %s", ErrMalformedSnapshot, tx.ID, tx.AccountID)
		}
	}
	for _, l := range s.Liabilities {
		if _, ok := known[l.AccountID]; !ok {
			return fmt.Errorf("%w: liability references unknown account %s", ErrMalformedSnapshot, l.AccountID)
		}
	}
	return nil
}
