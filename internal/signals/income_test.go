package signals

import (
	"testing"

	"github.com/transfa/insights-service/internal/domain"
)

func deposit(id string, day int, amount float64) domain.Transaction {
	return domain.Transaction{
		ID:              id,
		AccountID:       "chk-1",
		Date:            daysAgo(day),
		Amount:          -amount, // inflows are negative
		Description:     "Employer payroll",
		PrimaryCategory: IncomeCategory,
	}
}

func TestDetectIncome_EmptyInput(t *testing.T) {
	sig := DetectIncome(nil, nil, domain.Window180d, testAsOf)

	if sig.Detected {
		t.Fatal("expected no income signal for empty input")
	}
	if sig.Evidence.DepositCount != 0 || sig.Evidence.AverageIncome != 0 {
		t.Fatalf("expected zero-valued evidence, got %+v", sig.Evidence)
	}
}

func TestDetectIncome_MonthlyCadence(t *testing.T) {
	accounts := []domain.Account{checkingAccount("chk-1", 3000)}
	txs := []domain.Transaction{
		deposit("d1", 92, 2500),
		deposit("d2", 61, 2500),
		deposit("d3", 31, 2500),
		deposit("d4", 1, 2500),
	}

	sig := DetectIncome(accounts, txs, domain.Window180d, testAsOf)

	if sig.Evidence.Frequency != domain.PayMonthly {
		t.Fatalf("expected monthly frequency, got %s", sig.Evidence.Frequency)
	}
	if sig.Detected {
		t.Fatal("regular monthly income should not be flagged")
	}
	if sig.Evidence.AverageIncome != 2500 {
		t.Fatalf("expected average income 2500, got %v", sig.Evidence.AverageIncome)
	}
	if sig.Evidence.DepositCount != 4 {
		t.Fatalf("expected 4 deposits, got %d", sig.Evidence.DepositCount)
	}
}

func TestDetectIncome_BiweeklyCadence(t *testing.T) {
	accounts := []domain.Account{checkingAccount("chk-1", 3000)}
	txs := []domain.Transaction{
		deposit("d1", 42, 1200),
		deposit("d2", 28, 1200),
		deposit("d3", 14, 1200),
		deposit("d4", 0, 1200),
	}

	sig := DetectIncome(accounts, txs, domain.Window180d, testAsOf)

	if sig.Evidence.Frequency != domain.PayBiweekly {
		t.Fatalf("expected biweekly frequency, got %s", sig.Evidence.Frequency)
	}
	if sig.Detected {
		t.Fatal("regular biweekly income should not be flagged")
	}
}

func TestDetectIncome_LongGapsAreIrregular(t *testing.T) {
	accounts := []domain.Account{checkingAccount("chk-1", 3000)}
	txs := []domain.Transaction{
		deposit("d1", 150, 4000),
		deposit("d2", 100, 1500),
		deposit("d3", 50, 3200),
		deposit("d4", 0, 900),
	}

	sig := DetectIncome(accounts, txs, domain.Window180d, testAsOf)

	if sig.Evidence.MedianPayGapDays != 50 {
		t.Fatalf("expected median gap 50, got %v", sig.Evidence.MedianPayGapDays)
	}
	if sig.Evidence.Frequency != domain.PayIrregular {
		t.Fatalf("expected irregular frequency, got %s", sig.Evidence.Frequency)
	}
	if !sig.Detected {
		t.Fatal("median gap over 45 days must be detected")
	}
}

func TestDetectIncome_CashFlowBuffer(t *testing.T) {
	accounts := []domain.Account{checkingAccount("chk-1", 3000)}
	txs := []domain.Transaction{
		deposit("d1", 31, 2500),
		deposit("d2", 1, 2500),
		// 6000 of outflow over the 180-day window -> 1000/month estimate.
		{ID: "o1", AccountID: "chk-1", Date: daysAgo(10), Amount: 6000, Description: "Rent"},
	}

	sig := DetectIncome(accounts, txs, domain.Window180d, testAsOf)

	if got := sig.Evidence.CashFlowBuffer; got != 3 {
		t.Fatalf("expected cash flow buffer of 3 months, got %v", got)
	}
}
