package utils

import "strings"

// FormatPhoneNumber standardizes a Kenyan phone number to international
// format (+254XXXXXXXXX). Unparseable input is returned unchanged.
func FormatPhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case strings.HasPrefix(d, "254"):
		return "+" + d
	case strings.HasPrefix(d, "0"):
		return "+254" + d[1:]
	case len(d) == 9:
		return "+254" + d
	default:
		return phone
	}
}
