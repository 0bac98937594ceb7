package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var tzPhoneLayouts = []*regexp.Regexp{
	regexp.MustCompile(`^\+255\s?\d{2}\s?\d{3}\s?\d{4}$`),
	regexp.MustCompile(`^0\d{2}\s?\d{3}\s?\d{4}$`),
	regexp.MustCompile(`^\+255\d{9}$`),
	regexp.MustCompile(`^0\d{9}$`),
}

var nonDigitRe = regexp.MustCompile(`\D`)

// ValidPhone reports whether the number matches one of the accepted
// Tanzanian layouts (+255 XX XXX XXXX, 0XX XXX XXXX, or either without
// spacing).
func ValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	for _, re := range tzPhoneLayouts {
		if re.MatchString(phone) {
			return true
		}
	}
	return false
}

// FormatPhone normalizes a number to the +255 XX XXX XXXX standard.
// Numbers that don't fit a recognizable Tanzanian shape are returned
// unchanged.
func FormatPhone(phone string) string {
	digits := nonDigitRe.ReplaceAllString(phone, "")

	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		return fmt.Sprintf("+255 %s %s %s", digits[1:3], digits[3:6], digits[6:10])
	case len(digits) == 12 && strings.HasPrefix(digits, "255"):
		return fmt.Sprintf("+255 %s %s %s", digits[3:5], digits[5:8], digits[8:12])
	}

	return phone
}
