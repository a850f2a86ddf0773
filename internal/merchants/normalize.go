package merchants

import (
	"regexp"
	"strings"
)

var (
	posPrefix  = regexp.MustCompile(`(?i)^(POS|DEBIT|CREDIT|PURCHASE|PAYMENT)\s+`)
	trailingID = regexp.MustCompile(`\s+\d{4,}$`)
	dateToken  = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	spaces     = regexp.MustCompile(`\s+`)
)

// Normalize reduces a raw statement description to a merchant name:
// uppercased, channel prefixes and trailing reference numbers removed,
// embedded dates dropped, and truncated at the first *, # or - separator.
func Normalize(description string) string {
	normalized := strings.ToUpper(strings.TrimSpace(description))
	normalized = posPrefix.ReplaceAllString(normalized, "")
	normalized = trailingID.ReplaceAllString(normalized, "")
	normalized = dateToken.ReplaceAllString(normalized, "")

	if i := strings.IndexAny(normalized, "*#-"); i >= 0 {
		normalized = normalized[:i]
	}
	return strings.TrimSpace(spaces.ReplaceAllString(normalized, " "))
}
