/**
 * @description
 * Shared policy constants and small helpers for the detector package.
 * Tolerances are deliberate policy values, not derived numbers; they are
 * named individually so the rule set stays auditable.
 */
package signals

import (
	"math"
	"strings"

	"github.com/transfa/insights-service/internal/domain"
)

// Cadence targets and tolerances (days).
const (
	WeeklyGapDays      = 7
	WeeklyTolerance    = 2
	BiweeklyGapDays    = 14
	BiweeklyTolerance  = 3
	MonthlyGapDays     = 30
	MonthlyTolerance   = 5
	DaysPerMonthFactor = 30 // window-days-to-month normalization
)

// classifyCadence maps a median day gap to a cadence, or false when the
// gap falls outside every tolerance band.
func classifyCadence(medianGap float64) (domain.Cadence, bool) {
	switch {
	case math.Abs(medianGap-WeeklyGapDays) <= WeeklyTolerance:
		return domain.CadenceWeekly, true
	case math.Abs(medianGap-BiweeklyGapDays) <= BiweeklyTolerance:
		return domain.CadenceBiweekly, true
	case math.Abs(medianGap-MonthlyGapDays) <= MonthlyTolerance:
		return domain.CadenceMonthly, true
	}
	return "", false
}

// normalizeMerchant canonicalizes a merchant label so the same merchant
// is never double-counted across detection passes. Falls back to the
// transaction description when no merchant name was supplied.
func normalizeMerchant(tx domain.Transaction) string {
	name := tx.MerchantName
	if name == "" {
		name = tx.Description
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// dayGaps returns the day distances between consecutive dates. The dates
// must already be sorted ascending.
func dayGaps(dates []domain.Date) []float64 {
	if len(dates) < 2 {
		return nil
	}
	gaps := make([]float64, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		gaps = append(gaps, float64(DaysBetween(dates[i-1].Time, dates[i].Time)))
	}
	return gaps
}
