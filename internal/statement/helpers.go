package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finflow/internal/models"
)

// amountToken matches a monetary value with optional thousands separators
// and exactly two decimal places, the form every supported layout prints.
var amountToken = regexp.MustCompile(`[\d,]+\.\d{2}`)

// FindAmounts returns every amount token on a line, left to right.
func FindAmounts(line string) []string {
	return amountToken.FindAllString(line, -1)
}

// ParseAmountToken converts a single amount token to a decimal. The token is
// assumed to have matched amountToken, so failures indicate a caller bug.
func ParseAmountToken(tok string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(tok, ",", ""))
}

// CutSection returns the text between the first occurrence of heading
// (case-insensitive) and the earliest of the terminators, or the end of the
// document when none appears. The boolean is false when the heading itself
// is missing.
func CutSection(text, heading string, terminators ...string) (string, bool) {
	alts := make([]string, 0, len(terminators))
	for _, t := range terminators {
		alts = append(alts, regexp.QuoteMeta(t))
	}
	pattern := `(?is)` + regexp.QuoteMeta(heading) + `(.*?)(?:` + strings.Join(alts, "|") + `|$)`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchGroup applies pattern (case-insensitive) and returns its first
// capture group, or "" when the pattern does not match.
func MatchGroup(text, pattern string) string {
	re := regexp.MustCompile(`(?i)` + pattern)
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// MatchBalance extracts an optional labeled balance like "Opening Balance:
// Rs. 1,234.56" and returns nil when the label is absent.
func MatchBalance(text, pattern string) *decimal.Decimal {
	tok := MatchGroup(text, pattern)
	if tok == "" {
		return nil
	}
	d, err := ParseAmountToken(tok)
	if err != nil {
		return nil
	}
	return &d
}

// ContainsAny reports whether s contains any of the keywords,
// case-insensitively. Parsers use it to infer transaction direction from
// narration keywords when a layout has no signed amounts.
func ContainsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ResolveMonthDay completes an MM/DD date using the statement period's end
// year. Statements that span a year boundary print December rows after the
// period rolls into January, so a resolved date more than a month past the
// period end is pulled back a year.
func ResolveMonthDay(monthDay string, periodEnd *time.Time) (time.Time, error) {
	parts := strings.Split(monthDay, "/")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("not an MM/DD date: %q", monthDay)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid month in %q", monthDay)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid day in %q", monthDay)
	}

	year := time.Now().Year()
	if periodEnd != nil {
		year = periodEnd.Year()
	}
	resolved := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if periodEnd != nil && resolved.After(periodEnd.AddDate(0, 1, 0)) {
		resolved = resolved.AddDate(-1, 0, 0)
	}
	return resolved, nil
}

// RecoverResult converts a parser panic into a statement-level error so a
// malformed document never takes down the caller. Use in a deferred call.
func RecoverResult(result *models.StatementResult) {
	if r := recover(); r != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Unknown parsing error: %v", r))
	}
}
