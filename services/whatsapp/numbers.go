package whatsapp

import (
	"regexp"
	"strconv"
	"strings"
)

var numericToken = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// extractNumber finds the first numeric token in a free-form answer,
// accepting comma as decimal separator. ok is false when the message carries
// no number at all.
func extractNumber(text string) (float64, bool) {
	match := numericToken.FindString(text)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
