package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DisplayName derives the booking owner name shown on the schedule from an
// email address: the local part with dots replaced by spaces, title-cased.
// "jane.doe@example.com" becomes "Jane Doe". Reservations store this name,
// so ownership checks compare display names, not account IDs.
func DisplayName(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	words := strings.Fields(strings.ReplaceAll(local, ".", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToTitle(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
