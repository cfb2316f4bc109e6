package signals

import (
	"testing"

	"github.com/transfa/insights-service/internal/domain"
)

func creditAccount(id string, balance, limit float64) domain.Account {
	return domain.Account{
		ID:             id,
		Type:           domain.AccountCredit,
		Subtype:        "credit card",
		CurrentBalance: balance,
		CreditLimit:    &limit,
		Currency:       "USD",
	}
}

func TestDetectCredit_EmptyInput(t *testing.T) {
	sig := DetectCredit(nil, nil, domain.Window30d, testAsOf)

	if sig.Detected {
		t.Fatal("expected no credit signal for empty input")
	}
	if len(sig.Evidence.Accounts) != 0 || sig.Evidence.OverallUtilizationPercent != 0 {
		t.Fatalf("expected zero-valued evidence, got %+v", sig.Evidence)
	}
}

func TestDetectCredit_UtilizationBuckets(t *testing.T) {
	tests := []struct {
		name       string
		balance    float64
		limit      float64
		wantPct    float64
		wantBucket domain.UtilizationBucket
		wantHit    bool
	}{
		{name: "high", balance: 1500, limit: 2000, wantPct: 75, wantBucket: domain.Utilization50to80, wantHit: true},
		{name: "low", balance: 200, limit: 2000, wantPct: 10, wantBucket: domain.UtilizationUnder30, wantHit: false},
		{name: "mid", balance: 800, limit: 2000, wantPct: 40, wantBucket: domain.Utilization30to50, wantHit: false},
		{name: "maxed", balance: 1900, limit: 2000, wantPct: 95, wantBucket: domain.UtilizationOver80, wantHit: true},
		{name: "zero limit", balance: 500, limit: 0, wantPct: 0, wantBucket: domain.UtilizationUnder30, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := []domain.Account{creditAccount("cc-1", tt.balance, tt.limit)}
			sig := DetectCredit(accounts, nil, domain.Window30d, testAsOf)

			acct := sig.Evidence.Accounts[0]
			if acct.UtilizationPercent != tt.wantPct {
				t.Fatalf("expected utilization %v, got %v", tt.wantPct, acct.UtilizationPercent)
			}
			if acct.Bucket != tt.wantBucket {
				t.Fatalf("expected bucket %s, got %s", tt.wantBucket, acct.Bucket)
			}
			if sig.Detected != tt.wantHit {
				t.Fatalf("expected detected=%v, got %v", tt.wantHit, sig.Detected)
			}
		})
	}
}

func TestDetectCredit_LiabilityCrossReference(t *testing.T) {
	accounts := []domain.Account{creditAccount("cc-1", 200, 2000)}
	liabilities := []domain.Liability{
		{
			AccountID:         "cc-1",
			APRs:              []domain.APR{{Type: "purchase_apr", Percentage: 24.99}},
			MinimumPayment:    50,
			LastPaymentAmount: 50.75,
			IsOverdue:         false,
		},
	}

	sig := DetectCredit(accounts, liabilities, domain.Window30d, testAsOf)

	acct := sig.Evidence.Accounts[0]
	if !acct.HasInterestCharges {
		t.Fatal("expected interest charges from positive APR")
	}
	if !acct.MinimumPaymentOnly {
		t.Fatal("expected minimum-payment-only: last payment within $1 of minimum")
	}
	if !sig.Detected {
		t.Fatal("low utilization with interest charges should still trigger the signal")
	}
}

func TestDetectCredit_UnknownLiabilityNeverFails(t *testing.T) {
	accounts := []domain.Account{creditAccount("cc-1", 200, 2000)}

	sig := DetectCredit(accounts, nil, domain.Window30d, testAsOf)

	acct := sig.Evidence.Accounts[0]
	if acct.MinimumPaymentOnly || acct.HasInterestCharges || acct.IsOverdue {
		t.Fatal("missing liability must read as unknown, not as a failing condition")
	}
	if sig.Detected {
		t.Fatal("under-30 utilization with no liability should not be detected")
	}
}

func TestDetectCredit_OverallUtilizationAggregates(t *testing.T) {
	accounts := []domain.Account{
		creditAccount("cc-1", 1000, 2000),
		creditAccount("cc-2", 0, 2000),
	}

	sig := DetectCredit(accounts, nil, domain.Window180d, testAsOf)

	if sig.Evidence.OverallUtilizationPercent != 25 {
		t.Fatalf("expected overall utilization 25%%, got %v", sig.Evidence.OverallUtilizationPercent)
	}
	if sig.Evidence.OverallBucket != domain.UtilizationUnder30 {
		t.Fatalf("expected overall bucket under_30, got %s", sig.Evidence.OverallBucket)
	}
	// cc-1 alone is in the 30-50 bucket, which on its own is not stress.
	if sig.Detected {
		t.Fatal("no account is stressed, signal should be off")
	}
}
