// Package selection parses user-typed episode selection expressions into
// concrete zero-based index lists.
package selection

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned for any expression that does not match a
// recognized form or whose bounds fall outside the episode list.
var ErrInvalidSelection = errors.New("invalid selection format")

var (
	firstPattern  = regexp.MustCompile(`^f(\d+)$`)
	lastPattern   = regexp.MustCompile(`^l(\d+)$`)
	rangePattern  = regexp.MustCompile(`^(\d+)-(\d+)$`)
	singlePattern = regexp.MustCompile(`^(\d+)$`)
)

// Parse turns an expression like "all", "f5", "l3", "2-8" or "4" into an
// ordered list of zero-based indices into a list of total episodes.
//
// Parse never returns a partial result: a malformed or out-of-range
// expression yields ErrInvalidSelection and no indices.
func Parse(input string, total int) ([]int, error) {
	expr := strings.ToLower(strings.TrimSpace(input))
	expr = strings.ReplaceAll(expr, " ", "")

	switch {
	case expr == "all":
		return sequence(0, total), nil

	case firstPattern.MatchString(expr):
		n, err := strconv.Atoi(firstPattern.FindStringSubmatch(expr)[1])
		if err != nil {
			return nil, ErrInvalidSelection
		}
		if n > total {
			n = total
		}
		return sequence(0, n), nil

	case lastPattern.MatchString(expr):
		n, err := strconv.Atoi(lastPattern.FindStringSubmatch(expr)[1])
		if err != nil {
			return nil, ErrInvalidSelection
		}
		start := total - n
		if start < 0 {
			start = 0
		}
		return sequence(start, total), nil

	case rangePattern.MatchString(expr):
		m := rangePattern.FindStringSubmatch(expr)
		start, err1 := strconv.Atoi(m[1])
		end, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			return nil, ErrInvalidSelection
		}
		if start < 1 || start > end || end > total {
			return nil, ErrInvalidSelection
		}
		return sequence(start-1, end), nil

	case singlePattern.MatchString(expr):
		n, err := strconv.Atoi(expr)
		if err != nil || n < 1 || n > total {
			return nil, ErrInvalidSelection
		}
		return []int{n - 1}, nil
	}

	return nil, ErrInvalidSelection
}

// sequence returns [start, end) as a slice. An empty interval yields an
// empty, non-nil slice so callers can distinguish it from the error case.
func sequence(start, end int) []int {
	indices := make([]int, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		indices = append(indices, i)
	}
	return indices
}
