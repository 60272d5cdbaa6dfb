package output

import (
	"strconv"
	"strings"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole-cent currency with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var sb strings.Builder
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		sb.WriteByte('-')
	}
	sb.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	sb.WriteString(frac)
	return sb.String()
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatYear renders a summary year, where zero means the event is outside the horizon
func FormatYear(year int) string {
	if year == 0 {
		return "not within horizon"
	}
	return strconv.Itoa(year)
}

func statusLabel(s domain.EligibilityStatus) string {
	switch s {
	case domain.StatusEligible:
		return "eligible"
	case domain.StatusNotPrimaryResidence:
		return "not primary"
	case domain.StatusIneligiblePropertyType:
		return "property type"
	case domain.StatusIneligibleAge:
		return "under age"
	case domain.StatusInsufficientEquity:
		return "low equity"
	default:
		return string(s)
	}
}
