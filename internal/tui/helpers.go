package tui

import (
	"fmt"

	"github.com/andy/rosterdash/internal/domain"
)

// formatAmount formats an amount as "X,XXX.XX" with comma separators
func formatAmount(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)

	// Split at decimal point
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	if negative {
		return "-" + string(result) + decPart
	}
	return string(result) + decPart
}

// formatCost renders a client's subscription with its currency symbol
func formatCost(c domain.Client) string {
	return c.Currency.Symbol() + " " + formatAmount(domain.CostValue(c.SubscriptionCost))
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
