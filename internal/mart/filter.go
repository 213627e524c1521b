package mart

import (
	"analytics-service/internal/models"
)

// ApplyFilters narrows the table to the selected month and region set. The
// MonthAll token keeps every month; an empty region set keeps every state.
// Month matching is an exact y_mth comparison, regions are set membership.
func ApplyFilters(rows []models.Transaction, monthToken string, regions []string) []models.Transaction {
	if len(rows) == 0 {
		return rows
	}

	regionSet := make(map[string]struct{}, len(regions))
	for _, s := range regions {
		regionSet[s] = struct{}{}
	}

	filtered := make([]models.Transaction, 0, len(rows))
	for i := range rows {
		if monthToken != models.MonthAll && rows[i].YearMonth != monthToken {
			continue
		}
		if len(regionSet) > 0 {
			if _, ok := regionSet[rows[i].CustomerState]; !ok {
				continue
			}
		}
		filtered = append(filtered, rows[i])
	}
	return filtered
}
