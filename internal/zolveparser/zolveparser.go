package zolveparser

import (
	"regexp"
	"strings"
	"time"

	"finflow/internal/logging"
	"finflow/internal/models"
	"finflow/internal/parsererror"
	"finflow/internal/statement"
)

var (
	periodRe = regexp.MustCompile(`(?i)Statement Period[:\s]+(\w+ \d{1,2}, \d{4})\s*-\s*(\w+ \d{1,2}, \d{4})`)
	dateRe   = regexp.MustCompile(`^(\d{1,2}/\d{1,2})\s+(.+)$`)
	amountRe = regexp.MustCompile(`\$\s*([\d,]+\.\d{2})$`)
)

var creditKeywords = []string{"payment", "credit", "refund"}

func parseText(text string, log logging.Logger) models.StatementResult {
	var result models.StatementResult

	if last4 := statement.MatchGroup(text, `Card ending in\s+(\d{4})`); last4 != "" {
		result.AccountNumber = "****" + last4
	}
	result.PeriodStart, result.PeriodEnd = parsePeriod(text)
	result.ClosingBalance = statement.MatchBalance(text, `Current Balance[:\s]+\$\s*([\d,]+\.\d{2})`)

	section, ok := statement.CutSection(text, "TRANSACTIONS",
		"FEES AND INTEREST", "PAYMENT INFORMATION")
	if !ok {
		err := &parsererror.SectionNotFoundError{Institution: institution, Section: "TRANSACTIONS"}
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 10 {
			continue
		}

		dateMatch := dateRe.FindStringSubmatch(trimmed)
		if dateMatch == nil {
			continue
		}
		dateStr, rest := dateMatch[1], dateMatch[2]

		amountMatch := amountRe.FindStringSubmatch(rest)
		if amountMatch == nil {
			continue
		}
		amount, err := statement.ParseAmountToken(amountMatch[1])
		if err != nil {
			continue
		}

		description := strings.TrimSpace(rest[:strings.LastIndex(rest, amountMatch[0])])
		if description == "" {
			continue
		}

		postedAt, err := statement.ResolveMonthDay(dateStr, result.PeriodEnd)
		if err != nil {
			log.WithField(logging.FieldReason, err.Error()).Warn("Skipping row with unparseable date")
			continue
		}

		direction := models.DirectionDebit
		if statement.ContainsAny(description, creditKeywords) {
			direction = models.DirectionCredit
		}

		result.Transactions = append(result.Transactions, models.RawTransaction{
			Date:        postedAt,
			Description: description,
			Amount:      amount,
			Direction:   direction,
			Raw: map[string]string{
				"dateStr":   dateStr,
				"amountStr": amountMatch[1],
			},
		})
	}

	return result
}

func parsePeriod(text string) (*time.Time, *time.Time) {
	m := periodRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	var start, end *time.Time
	if d, err := parseMonthDayYear(m[1]); err == nil {
		start = &d
	}
	if d, err := parseMonthDayYear(m[2]); err == nil {
		end = &d
	}
	return start, end
}

func parseMonthDayYear(s string) (time.Time, error) {
	s = strings.Join(strings.Fields(s), " ")
	for _, layout := range []string{"January 2, 2006", "Jan 2, 2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, &parsererror.ParseError{Parser: institution, Field: "period", Value: s}
}
