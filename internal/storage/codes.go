package storage

import (
	"fmt"
	"log/slog"
)

const maxSuggestedCodes = 100

// AvailableHotelCodes returns up to 100 three-digit zero-padded codes not
// yet assigned to any hotel, in ascending order. This feeds a best-effort
// suggestion list in the create form, so on any database failure it returns
// an empty list instead of an error.
func (s *Storage) AvailableHotelCodes() []string {
	var assigned []string
	if err := s.db.Raw(`SELECT "codeHotel" FROM hotel`).Scan(&assigned).Error; err != nil {
		slog.Error("failed to fetch assigned hotel codes", "error", err)
		return []string{}
	}

	taken := make(map[string]struct{}, len(assigned))
	for _, code := range assigned {
		taken[code] = struct{}{}
	}

	available := make([]string, 0, maxSuggestedCodes)
	for n := 0; n <= 999 && len(available) < maxSuggestedCodes; n++ {
		code := fmt.Sprintf("%03d", n)
		if _, ok := taken[code]; !ok {
			available = append(available, code)
		}
	}
	return available
}
