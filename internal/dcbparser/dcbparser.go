package dcbparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"finflow/internal/logging"
	"finflow/internal/models"
	"finflow/internal/parsererror"
	"finflow/internal/statement"
)

var (
	periodRe = regexp.MustCompile(`(?i)Statement Period[:\s]+(\d{2}-\w{3}-\d{4})\s+to\s+(\d{2}-\w{3}-\d{4})`)
	dateRe   = regexp.MustCompile(`^(\d{2}-\w{3}-\d{4})\s+(.+)$`)
)

var creditKeywords = []string{"credit", "deposit", "upi cr", "neft cr", "transfer in"}

func parseText(text string, log logging.Logger) models.StatementResult {
	var result models.StatementResult

	result.AccountNumber = statement.MatchGroup(text, `Account Number[:\s]+(\d+)`)
	result.PeriodStart, result.PeriodEnd = parsePeriod(text)
	result.OpeningBalance = statement.MatchBalance(text, `Opening Balance[:\s]+(?:Rs\.?|INR)?\s*([\d,]+\.\d{2})`)
	result.ClosingBalance = statement.MatchBalance(text, `Closing Balance[:\s]+(?:Rs\.?|INR)?\s*([\d,]+\.\d{2})`)

	section, ok := statement.CutSection(text, "ACCOUNT DETAILS", "ACCOUNT SUMMARY", "Closing Balance")
	if !ok {
		err := &parsererror.SectionNotFoundError{Institution: institution, Section: "ACCOUNT DETAILS"}
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 15 {
			continue
		}

		dateMatch := dateRe.FindStringSubmatch(trimmed)
		if dateMatch == nil {
			continue
		}
		dateStr, rest := dateMatch[1], dateMatch[2]

		tokens := statement.FindAmounts(rest)
		if len(tokens) < 2 {
			continue
		}

		balanceTok := tokens[len(tokens)-1]
		amountTok := tokens[len(tokens)-2]

		// Same dual-column rule as HDFC: a row with money in both the
		// withdrawals and the deposits column is reported, not guessed.
		if len(tokens) >= 3 {
			otherTok := tokens[len(tokens)-3]
			amount, _ := statement.ParseAmountToken(amountTok)
			other, _ := statement.ParseAmountToken(otherTok)
			switch {
			case !amount.IsZero() && !other.IsZero():
				result.Errors = append(result.Errors, fmt.Sprintf(
					"%sboth withdrawals and deposits columns populated: %q",
					models.LineSkippedPrefix, trimmed))
				continue
			case amount.IsZero():
				amountTok = otherTok
			}
		}

		amount, err := statement.ParseAmountToken(amountTok)
		if err != nil || amount.IsZero() {
			continue
		}

		description := strings.TrimSpace(rest[:strings.Index(rest, tokens[0])])
		if description == "" {
			continue
		}

		postedAt, err := parseDate(dateStr)
		if err != nil {
			log.WithField(logging.FieldReason, err.Error()).Warn("Skipping row with unparseable date")
			continue
		}

		direction := models.DirectionDebit
		if statement.ContainsAny(rest, creditKeywords) {
			direction = models.DirectionCredit
		}

		tx := models.RawTransaction{
			Date:        postedAt,
			Description: description,
			Amount:      amount,
			Direction:   direction,
			Raw: map[string]string{
				"dateStr":    dateStr,
				"amountStr":  amountTok,
				"balanceStr": balanceTok,
			},
		}
		if b, err := statement.ParseAmountToken(balanceTok); err == nil {
			tx.Balance = &b
		}
		result.Transactions = append(result.Transactions, tx)
	}

	return result
}

func parsePeriod(text string) (*time.Time, *time.Time) {
	m := periodRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	var start, end *time.Time
	if d, err := parseDate(m[1]); err == nil {
		start = &d
	}
	if d, err := parseDate(m[2]); err == nil {
		end = &d
	}
	return start, end
}

// parseDate handles DD-MMM-YYYY, e.g. 01-Nov-2024.
func parseDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("not a DD-MMM-YYYY date: %q", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in %q", s)
	}
	month, err := time.Parse("Jan", parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in %q", s)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in %q", s)
	}
	return time.Date(year, month.Month(), day, 0, 0, 0, 0, time.UTC), nil
}
