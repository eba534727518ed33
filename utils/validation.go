// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	e164Pattern  = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	return phonePattern.MatchString(CleanPhone(phone))
}

// CleanPhone drops spaces, dashes and parentheses.
func CleanPhone(phone string) string {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	return strings.ReplaceAll(cleaned, ")", "")
}

// IsE164 reports whether phone can be addressed over WhatsApp.
func IsE164(phone string) bool {
	return e164Pattern.MatchString(CleanPhone(phone))
}

// ValidClock checks a 24h "HH:MM" time of day.
func ValidClock(value string) bool {
	return clockPattern.MatchString(value)
}
