package hdfcparser

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
	periodRe = regexp.MustCompile(`(?i)Statement of Account from\s+(\d{2}[/-]\d{2}[/-]\d{4})\s+to\s+(\d{2}[/-]\d{2}[/-]\d{4})`)
	dateRe   = regexp.MustCompile(`^(\d{2}[/-]\d{2}[/-]\d{4})\s+(.+)$`)
)

var creditKeywords = []string{"deposit", "credit", "salary", "transfer in", "upi cr"}

func parseText(text string, log logging.Logger) models.StatementResult {
	var result models.StatementResult

	result.AccountNumber = statement.MatchGroup(text, `Account Number[:\s]+(\d+)`)
	result.PeriodStart, result.PeriodEnd = parsePeriod(text)
	result.OpeningBalance = statement.MatchBalance(text, `Opening Balance[:\s]+(?:Rs\.?|INR)?\s*([\d,]+\.\d{2})`)
	result.ClosingBalance = statement.MatchBalance(text, `Closing Balance[:\s]+(?:Rs\.?|INR)?\s*([\d,]+\.\d{2})`)

	section, ok := statement.CutSection(text, "Statement of account", "Closing Balance")
	if !ok {
		err := &parsererror.SectionNotFoundError{Institution: institution, Section: "Statement of account"}
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

		// Rows carrying values in both the withdrawal and the deposit
		// column cannot be attributed to one side, so they are skipped
		// with a warning instead of guessed at.
		if len(tokens) >= 3 {
			otherTok := tokens[len(tokens)-3]
			amount, _ := statement.ParseAmountToken(amountTok)
			other, _ := statement.ParseAmountToken(otherTok)
			switch {
			case !amount.IsZero() && !other.IsZero():
				result.Errors = append(result.Errors, fmt.Sprintf(
					"%sboth withdrawal and deposit columns populated: %q",
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
		if statement.ContainsAny(description, creditKeywords) {
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

// parseDate handles DD/MM/YYYY and DD-MM-YYYY.
func parseDate(s string) (time.Time, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("not a DD/MM/YYYY date: %q", s)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
