package id

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxSequence is the largest suffix that still fits the 6-digit slot.
const MaxSequence = 999_999

var (
	ErrMalformedNumber  = errors.New("malformed application number")
	ErrSequenceOverflow = errors.New("application number sequence overflow")
)

var reApplicationNumber = regexp.MustCompile(`^#([A-Z0-9]+)-(\d{4})-(\d{6})$`)

// NumberPrefix returns the "#PREFIX-YYYY-" part shared by every number of a year.
func NumberPrefix(prefix string, year int) string {
	return fmt.Sprintf("#%s-%04d-", strings.ToUpper(prefix), year)
}

// FormatApplicationNumber renders #PREFIX-YYYY-NNNNNN.
func FormatApplicationNumber(prefix string, year, seq int) (string, error) {
	if seq < 1 || seq > MaxSequence {
		return "", fmt.Errorf("%w: %d", ErrSequenceOverflow, seq)
	}
	return fmt.Sprintf("%s%06d", NumberPrefix(prefix, year), seq), nil
}

// ParseSequence extracts the numeric suffix of an application number.
func ParseSequence(number string) (int, error) {
	m := reApplicationNumber.FindStringSubmatch(number)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, number)
	}
	n, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, number)
	}
	return n, nil
}
