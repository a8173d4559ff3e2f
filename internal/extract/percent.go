package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var widthPattern = regexp.MustCompile(`(?i)width\s*:\s*([^;]+)`)

// ParsePercent extracts a percentage from the heterogeneous encodings found
// in the rating markup: a bare number, a number with a trailing %, or a CSS
// declaration containing a width token ("width: 42.5%;"). The value is
// rounded to 4 decimal places. Malformed input is never an error, it just
// reports false.
func ParsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := widthPattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return math.Round(value*10000) / 10000, true
}
