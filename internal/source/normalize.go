// Package source turns raw CSV exports and manual entries into admitted
// ledger transactions.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

// ErrNoAdmissions reports a batch in which no line produced a valid entry.
// Distinct from both full and partial success.
var ErrNoAdmissions = errors.New("no admissible records")

// dateLayouts are tried in order after the canonical form fails.
var dateLayouts = []string{
	"2006-1-2",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2, 2006",
	"01/02/2006",
}

// Normalize parses raw CSV text into admitted transactions plus per-line
// rejections. A header line (date column containing "date") is skipped,
// blank lines are ignored, and no rejection aborts the batch. The returned
// error reports reader failures only.
func Normalize(r io.Reader) (NormalizeResult, error) {
	var res NormalizeResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := SplitCSVLine(line)
		if lineNo == 1 && isHeaderLine(fields) {
			res.HeaderSkipped = true
			continue
		}

		tx, reason := admitFields(fields)
		if reason != "" {
			res.Rejections = append(res.Rejections, Rejection{Line: lineNo, Reason: reason})
			continue
		}
		res.Admitted = append(res.Admitted, tx)
	}

	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("reading input: %w", err)
	}
	return res, nil
}

// Outcome reports ErrNoAdmissions when the batch admitted nothing.
// Partial success (some admitted, some rejected) is not an error.
func (r NormalizeResult) Outcome() error {
	if len(r.Admitted) == 0 {
		return ErrNoAdmissions
	}
	return nil
}

// admitFields turns one split CSV line into a transaction, or a rejection
// reason. Field order: date, kind, amount, optional institution.
func admitFields(fields []string) (model.Transaction, string) {
	if len(fields) < 3 {
		return model.Transaction{}, fmt.Sprintf("too few fields (%d, need at least 3)", len(fields))
	}

	date, err := ParseDate(fields[0])
	if err != nil {
		return model.Transaction{}, fmt.Sprintf("unparsable date %q", fields[0])
	}

	amount, err := ParseAmount(fields[2])
	if err != nil {
		return model.Transaction{}, fmt.Sprintf("invalid amount %q: %v", fields[2], err)
	}

	institution := model.DefaultInstitution
	if len(fields) >= 4 && fields[3] != "" {
		institution = fields[3]
	}

	return model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Kind:        ParseKind(fields[1]),
		Amount:      amount,
		Institution: institution,
	}, ""
}

// SplitCSVLine splits on commas that are not enclosed in double quotes,
// trims whitespace, and strips a single surrounding quote pair per field.
func SplitCSVLine(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
			b.WriteRune(c)
		case c == ',' && !inQuotes:
			fields = append(fields, cleanField(b.String()))
			b.Reset()
		default:
			b.WriteRune(c)
		}
	}
	fields = append(fields, cleanField(b.String()))
	return fields
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// isHeaderLine reports whether the first line's date column names a header.
func isHeaderLine(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(fields[0]), "date")
}

// ParseKind selects WITHDRAWAL on a case-insensitive "withdraw" substring;
// everything else, including the empty string, is a contribution.
func ParseKind(s string) model.Kind {
	if strings.Contains(strings.ToLower(s), "withdraw") {
		return model.Withdrawal
	}
	return model.Contribution
}

// ParseAmount strips thousands-separator commas and parses a strictly
// positive finite decimal.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, errors.New("empty")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not finite")
	}
	if v <= 0 {
		return 0, errors.New("must be positive")
	}
	return v, nil
}

// ParseDate accepts strict YYYY-MM-DD, then falls back to the general
// layouts. The result is normalized to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(model.DateLayout, s); err == nil {
		return midnightUTC(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
