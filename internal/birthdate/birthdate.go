// Package birthdate scores a pair by birthdate alone: life-path numerology and
// zodiac element astrology. Neither looks at trait vectors.
package birthdate

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the accepted birthdate format.
const Layout = "2006-01-02"

// ErrInvalidDate is returned for anything that is not a real YYYY-MM-DD date.
var ErrInvalidDate = errors.New("birthdate: invalid date")

// Parse validates s against Layout.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// #region numerology
// LifePathNumber sums the date's digits and keeps summing the digits of the
// total until it is a single digit.
func LifePathNumber(date string) (int, error) {
	if _, err := Parse(date); err != nil {
		return 0, err
	}
	total := 0
	for _, r := range date {
		if r >= '0' && r <= '9' {
			total += int(r - '0')
		}
	}
	for total > 9 {
		total = digitSum(total)
	}
	return total, nil
}

func digitSum(n int) int {
	s := 0
	for n > 0 {
		s += n % 10
		n /= 10
	}
	return s
}

// NumerologyCompatibility is 1.0 for equal life-path numbers, 0.7 when they
// differ by at most 2, and 0.3 otherwise.
func NumerologyCompatibility(date1, date2 string) (float64, error) {
	lp1, err := LifePathNumber(date1)
	if err != nil {
		return 0, err
	}
	lp2, err := LifePathNumber(date2)
	if err != nil {
		return 0, err
	}
	diff := lp1 - lp2
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 1.0, nil
	case diff <= 2:
		return 0.7, nil
	default:
		return 0.3, nil
	}
}

// #endregion numerology
