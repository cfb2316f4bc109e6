package eligibility

import (
	"testing"

	"github.com/transfa/insights-service/internal/domain"
)

func stressedBundle() domain.DetectedSignals {
	sig := domain.DetectedSignals{}
	sig.Credit.Days180 = domain.Signal[domain.CreditEvidence]{
		Detected: true,
		Window:   domain.Window180d,
		Evidence: domain.CreditEvidence{
			Accounts: []domain.CreditAccountStatus{
				{AccountID: "card-1", Balance: 900, Limit: 1000, UtilizationPercent: 90, Bucket: domain.UtilizationOver80, HasInterestCharges: true},
				{AccountID: "card-2", Balance: 200, Limit: 2000, UtilizationPercent: 10, Bucket: domain.UtilizationUnder30},
			},
			OverallUtilizationPercent: 36.67,
			OverallBucket:             domain.Utilization30to50,
		},
	}
	sig.Savings.Days180 = domain.Signal[domain.SavingsEvidence]{
		Window: domain.Window180d,
		Evidence: domain.SavingsEvidence{
			Accounts:            []domain.SavingsActivity{{AccountID: "sav-1", EndBalance: 4000}},
			TotalBalance:        4000,
			EmergencyFundMonths: 1.6,
		},
	}
	sig.Income.Days180 = domain.Signal[domain.IncomeEvidence]{
		Window: domain.Window180d,
		Evidence: domain.IncomeEvidence{
			DepositCount:     12,
			MedianPayGapDays: 14,
			Frequency:        domain.PayBiweekly,
			AverageIncome:    1500,
		},
	}
	return sig
}

func TestCalculateMetrics_CreditAggregation(t *testing.T) {
	m := CalculateMetrics(stressedBundle(), nil)

	if m.MaxUtilizationPercent != 90 {
		t.Fatalf("expected max utilization 90, got %v", m.MaxUtilizationPercent)
	}
	if m.AverageUtilizationPercent != 50 {
		t.Fatalf("expected average utilization 50, got %v", m.AverageUtilizationPercent)
	}
	if m.TotalCreditBalance != 1100 || m.TotalCreditLimit != 3000 {
		t.Fatalf("unexpected totals: balance %v limit %v", m.TotalCreditBalance, m.TotalCreditLimit)
	}
	// One interest-bearing account at the flat placeholder rate.
	if m.EstimatedInterestPaid != FlatInterestPerAccount {
		t.Fatalf("expected interest %v, got %v", FlatInterestPerAccount, m.EstimatedInterestPaid)
	}
	if !m.HasCreditCard {
		t.Fatal("expected HasCreditCard")
	}
}

func TestCalculateMetrics_IncomeNormalization(t *testing.T) {
	m := CalculateMetrics(stressedBundle(), nil)

	if m.EstimatedMonthlyIncome != 1500*BiweeklyPerMonth {
		t.Fatalf("biweekly income should be scaled by %v, got %v", BiweeklyPerMonth, m.EstimatedMonthlyIncome)
	}
	if m.IncomeStability != domain.IncomeStable {
		t.Fatalf("biweekly pay is stable, got %s", m.IncomeStability)
	}
	// No subscriptions, so the 70%-of-income heuristic wins.
	if want := m.EstimatedMonthlyIncome * ExpenseIncomeShare; m.EstimatedMonthlyExpenses != want {
		t.Fatalf("expected expenses %v, got %v", want, m.EstimatedMonthlyExpenses)
	}
}

func TestCalculateMetrics_SubscriptionCostDominatesExpenses(t *testing.T) {
	sig := stressedBundle()
	sig.Subscriptions.Days180.Evidence.MonthlySubscriptionCost = 5000

	m := CalculateMetrics(sig, nil)

	if m.EstimatedMonthlyExpenses != 5000 {
		t.Fatalf("subscription cost above the income heuristic must win, got %v", m.EstimatedMonthlyExpenses)
	}
}

func TestCalculateMetrics_IrregularIncome(t *testing.T) {
	sig := stressedBundle()
	sig.Income.Days180.Evidence.Frequency = domain.PayIrregular
	sig.Income.Days180.Evidence.AverageIncome = 2000

	m := CalculateMetrics(sig, nil)

	if m.IncomeStability != domain.IncomeIrregular {
		t.Fatalf("expected irregular stability, got %s", m.IncomeStability)
	}
	// Irregular income is taken as already-monthly.
	if m.EstimatedMonthlyIncome != 2000 {
		t.Fatalf("expected income 2000, got %v", m.EstimatedMonthlyIncome)
	}
}

func TestCalculateMetrics_AccountFlags(t *testing.T) {
	accounts := []domain.Account{
		{ID: "chk-1", Type: domain.AccountDepository, Subtype: "checking"},
	}

	m := CalculateMetrics(stressedBundle(), accounts)

	if !m.HasCheckingAccount {
		t.Fatal("expected HasCheckingAccount")
	}
	if !m.HasSavingsAccount {
		t.Fatal("expected HasSavingsAccount from savings evidence")
	}
}

func TestCalculateMetrics_EmptyBundle(t *testing.T) {
	m := CalculateMetrics(domain.DetectedSignals{}, nil)

	if m != (domain.EligibilityMetrics{IncomeStability: domain.IncomeStable}) {
		t.Fatalf("degenerate bundle should produce zero metrics, got %+v", m)
	}
}
