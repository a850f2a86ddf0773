package chaseparser

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
	periodRe = regexp.MustCompile(`(?i)Statement Period[:\s]+([A-Z][a-z]+\s+\d{1,2})\s*-\s*([A-Z][a-z]+\s+\d{1,2},\s*\d{4})`)
	dateRe   = regexp.MustCompile(`^(\d{1,2}/\d{1,2})\s+(.+)$`)
	// The rightmost one or two signed dollar tokens on a row are the
	// transaction amount and, when present, the running balance.
	amountRe = regexp.MustCompile(`([-+]?\$?\s*[\d,]+\.\d{2})\s*([-+]?\$?\s*[\d,]+\.\d{2})?$`)
	signRe   = regexp.MustCompile(`[$,\s]`)
)

func parseText(text string, log logging.Logger) models.StatementResult {
	var result models.StatementResult

	result.AccountNumber = statement.MatchGroup(text, `Account Number[:\s]+(\d+)`)
	result.PeriodStart, result.PeriodEnd = parsePeriod(text)
	result.OpeningBalance = statement.MatchBalance(text, `Beginning Balance[:\s]+\$?([\d,]+\.\d{2})`)
	result.ClosingBalance = statement.MatchBalance(text, `Ending Balance[:\s]+\$?([\d,]+\.\d{2})`)

	section, ok := statement.CutSection(text, "TRANSACTION DETAIL",
		"TOTAL DEPOSITS", "TOTAL WITHDRAWALS", "Ending Balance")
	if !ok {
		err := &parsererror.SectionNotFoundError{Institution: institution, Section: "TRANSACTION DETAIL"}
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

		amountStr := signRe.ReplaceAllString(amountMatch[1], "")
		amount, err := statement.ParseAmountToken(strings.TrimLeft(amountStr, "-+"))
		if err != nil {
			continue
		}

		balanceTok := ""
		if amountMatch[2] != "" {
			balanceTok = signRe.ReplaceAllString(amountMatch[2], "")
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

		direction := models.DirectionCredit
		if strings.HasPrefix(amountStr, "-") {
			direction = models.DirectionDebit
		}

		tx := models.RawTransaction{
			Date:        postedAt,
			Description: description,
			Amount:      amount,
			Direction:   direction,
			Raw: map[string]string{
				"dateStr":   dateStr,
				"amountStr": amountStr,
			},
		}
		if balanceTok != "" {
			if b, err := statement.ParseAmountToken(strings.TrimLeft(balanceTok, "-+")); err == nil {
				tx.Balance = &b
				tx.Raw["balanceStr"] = balanceTok
			}
		}
		result.Transactions = append(result.Transactions, tx)
	}

	return result
}

// parsePeriod reads "Statement Period: Jan 01 - Jan 31, 2024", completing
// the start date with the year printed on the end date. Both full and
// abbreviated month names appear in the wild.
func parsePeriod(text string) (*time.Time, *time.Time) {
	m := periodRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	end, err := parseMonthDayYear(m[2])
	if err != nil {
		return nil, nil
	}
	start, err := parseMonthDayYear(normalizeSpaces(m[1]) + ", " + end.Format("2006"))
	if err != nil {
		return nil, &end
	}
	return &start, &end
}

func parseMonthDayYear(s string) (time.Time, error) {
	s = normalizeSpaces(s)
	for _, layout := range []string{"January 2, 2006", "Jan 2, 2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, &parsererror.ParseError{Parser: institution, Field: "period", Value: s}
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
