package market

import (
	"strings"

	"crypto-tracker/internal/domain"
)

// SuggestionLimit caps the autocomplete dropdown.
const SuggestionLimit = 5

// FilterByName returns the coins whose name contains term, case-insensitively.
// A term that is blank after trimming returns a copy of the full list.
func FilterByName(coins []domain.CoinSummary, term string) []domain.CoinSummary {
	if strings.TrimSpace(term) == "" {
		out := make([]domain.CoinSummary, len(coins))
		copy(out, coins)
		return out
	}

	needle := strings.ToLower(term)
	out := make([]domain.CoinSummary, 0, len(coins))
	for _, c := range coins {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Suggest returns up to limit coins whose name contains input, in list order.
// Empty input yields no suggestions.
func Suggest(coins []domain.CoinSummary, input string, limit int) []domain.CoinSummary {
	if input == "" || limit <= 0 {
		return nil
	}

	needle := strings.ToLower(input)
	var out []domain.CoinSummary
	for _, c := range coins {
		if !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
