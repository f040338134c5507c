// Package day01 counts calories: groups of numbers separated by blank lines.
package day01

import (
	"fmt"
	"strconv"
	"strings"
)

// Run returns the largest group total for part 1 and the sum of the three
// largest group totals for part 2.
func Run(input string, part int) (string, error) {
	var n int
	switch part {
	case 1:
		n = 1
	case 2:
		n = 3
	default:
		return "", fmt.Errorf("unknown part %d", part)
	}

	best := newTopN(n)
	group := 0
	for i, line := range strings.Split(input, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			best.add(group)
			group = 0
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		group += v
	}
	best.add(group)

	return strconv.Itoa(best.sum()), nil
}

// topN keeps the n largest values seen.
type topN struct {
	n      int
	values []int
}

func newTopN(n int) *topN {
	return &topN{n: n, values: make([]int, 0, n)}
}

func (t *topN) add(v int) {
	if len(t.values) < t.n {
		t.values = append(t.values, v)
		return
	}
	low := 0
	for i, x := range t.values {
		if x < t.values[low] {
			low = i
		}
	}
	if t.values[low] < v {
		t.values[low] = v
	}
}

func (t *topN) sum() int {
	total := 0
	for _, v := range t.values {
		total += v
	}
	return total
}
