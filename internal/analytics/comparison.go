package analytics

import (
	"fmt"
	"time"

	"analytics-service/internal/models"
)

const monthLayout = "2006-01"

// PreviousMonth returns the calendar month immediately before the given
// YYYY-MM token, rolling the year back across January.
func PreviousMonth(token string) (string, error) {
	t, err := time.Parse(monthLayout, token)
	if err != nil {
		return "", fmt.Errorf("invalid month token %q: %w", token, err)
	}
	return t.AddDate(0, -1, 0).Format(monthLayout), nil
}

// ComputeComparison aligns the filtered subset against its previous calendar
// month under the same region filter. When no specific month is selected,
// the previous month has no matching rows, or the token is malformed, the
// result is not comparable; those cases never surface as errors.
func ComputeComparison(subset []models.Transaction, monthToken string, full []models.Transaction, regions []string) models.Comparison {
	result := models.Comparison{
		Current: ComputePeriodMetrics(subset),
	}

	if monthToken == models.MonthAll {
		return result
	}

	prevMonth, err := PreviousMonth(monthToken)
	if err != nil {
		return result
	}

	regionSet := make(map[string]struct{}, len(regions))
	for _, s := range regions {
		regionSet[s] = struct{}{}
	}

	var prevRows []models.Transaction
	for i := range full {
		if full[i].YearMonth != prevMonth {
			continue
		}
		if len(regionSet) > 0 {
			if _, ok := regionSet[full[i].CustomerState]; !ok {
				continue
			}
		}
		prevRows = append(prevRows, full[i])
	}

	if len(prevRows) == 0 {
		return result
	}

	prev := ComputePeriodMetrics(prevRows)
	result.Previous = &prev
	result.Comparable = true
	result.Deltas = ComputeDeltas(result.Current, prev)
	return result
}
