/**
 * @description
 * Runs all six detectors over both windows and assembles the fixed
 * twelve-signal bundle for one snapshot. Pure; the snapshot is never
 * mutated and no reference into it is retained.
 */
package signals

import (
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

// DetectAll evaluates every detector for the 30- and 180-day windows.
func DetectAll(snapshot domain.Snapshot, asOf time.Time) domain.DetectedSignals {
	return domain.DetectedSignals{
		Overdraft: domain.WindowPair[domain.OverdraftEvidence]{
			Days30:  DetectOverdraft(snapshot.Accounts, snapshot.Transactions, domain.Window30d, asOf),
			Days180: DetectOverdraft(snapshot.Accounts, snapshot.Transactions, domain.Window180d, asOf),
		},
		Credit: domain.WindowPair[domain.CreditEvidence]{
			Days30:  DetectCredit(snapshot.Accounts, snapshot.Liabilities, domain.Window30d, asOf),
			Days180: DetectCredit(snapshot.Accounts, snapshot.Liabilities, domain.Window180d, asOf),
		},
		Income: domain.WindowPair[domain.IncomeEvidence]{
			Days30:  DetectIncome(snapshot.Accounts, snapshot.Transactions, domain.Window30d, asOf),
			Days180: DetectIncome(snapshot.Accounts, snapshot.Transactions, domain.Window180d, asOf),
		},
		Subscriptions: domain.WindowPair[domain.SubscriptionEvidence]{
			Days30:  DetectSubscriptions(snapshot.Transactions, snapshot.Streams, domain.Window30d, asOf),
			Days180: DetectSubscriptions(snapshot.Transactions, snapshot.Streams, domain.Window180d, asOf),
		},
		Savings: domain.WindowPair[domain.SavingsEvidence]{
			Days30:  DetectSavings(snapshot.Accounts, snapshot.Transactions, domain.Window30d, asOf),
			Days180: DetectSavings(snapshot.Accounts, snapshot.Transactions, domain.Window180d, asOf),
		},
		Activity: domain.WindowPair[domain.ActivityEvidence]{
			Days30:  DetectActivity(snapshot.Transactions, domain.Window30d, asOf),
			Days180: DetectActivity(snapshot.Transactions, domain.Window180d, asOf),
		},
	}
}
