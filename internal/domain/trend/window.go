package trend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const hoursPerDay = 24

// ErrInvalidWindow is returned when a trend window cannot be parsed.
var ErrInvalidWindow = errors.New("invalid trend window")

// ParseWindow parses a named trend window. Day windows use the "7d"
// shorthand the views speak; anything else falls through to Go duration
// syntax ("24h", "90m").
func ParseWindow(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidWindow)
	}
	if days, found := strings.CutSuffix(s, "d"); found {
		n, err := strconv.Atoi(days)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
		}
		return time.Duration(n) * hoursPerDay * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
	return d, nil
}
