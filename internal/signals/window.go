/**
 * @description
 * Time-window helpers shared by all six detectors. Pure functions; empty
 * inputs yield zero values, never an error, so that "no data" always
 * reads as "no signal" further up.
 */
package signals

import (
	"sort"
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

// TransactionsInWindow returns every transaction whose date falls within
// [asOf - days, asOf] inclusive. The input slice is never mutated.
func TransactionsInWindow(txs []domain.Transaction, days int, asOf time.Time) []domain.Transaction {
	start := domain.DateOf(asOf).AddDate(0, 0, -days)
	end := domain.DateOf(asOf).Time
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// DaysBetween returns the absolute day distance between two calendar
// dates, ignoring any time-of-day component.
func DaysBetween(a, b time.Time) int {
	da := domain.DateOf(a).Time
	db := domain.DateOf(b).Time
	diff := int(db.Sub(da).Hours() / 24)
	if diff < 0 {
		return -diff
	}
	return diff
}

// Median returns the median of vals, 0 for an empty slice.
func Median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Average returns the mean of vals, 0 for an empty slice.
func Average(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
