package aggregator

import (
	"fmt"
	"sort"

	"github.com/atikulmunna/logtally/internal/model"
)

// Order selects how LevelCount.Sorted arranges levels.
type Order string

const (
	OrderFirstSeen Order = "first-seen"
	OrderLevel     Order = "level"
	OrderCount     Order = "count"
)

// ParseOrder validates an order name.
func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case OrderFirstSeen, OrderLevel, OrderCount:
		return o, nil
	case "":
		return OrderFirstSeen, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want first-seen, level or count)", s)
	}
}

// LevelCount maps each level to its number of records.
// Levels iterate in the order they were first seen.
type LevelCount struct {
	levels []string
	counts map[string]int
}

// Count tallies records by level. Levels are compared as stored, so
// "INFO" and "info" are counted separately.
func Count(records []model.LogRecord) LevelCount {
	lc := LevelCount{counts: make(map[string]int)}
	for _, r := range records {
		if _, seen := lc.counts[r.Level]; !seen {
			lc.levels = append(lc.levels, r.Level)
		}
		lc.counts[r.Level]++
	}
	return lc
}

// Get returns the count for level, or 0 if it never occurred.
func (lc LevelCount) Get(level string) int {
	return lc.counts[level]
}

// Levels returns the levels in iteration order.
func (lc LevelCount) Levels() []string {
	out := make([]string, len(lc.levels))
	copy(out, lc.levels)
	return out
}

// Len returns the number of distinct levels.
func (lc LevelCount) Len() int {
	return len(lc.levels)
}

// Total returns the sum of all counts.
func (lc LevelCount) Total() int {
	total := 0
	for _, n := range lc.counts {
		total += n
	}
	return total
}

// Sorted returns a copy whose iteration order follows o.
// Count order is descending; ties keep first-seen order.
func (lc LevelCount) Sorted(o Order) LevelCount {
	out := LevelCount{
		levels: lc.Levels(),
		counts: make(map[string]int, len(lc.counts)),
	}
	for k, v := range lc.counts {
		out.counts[k] = v
	}

	switch o {
	case OrderLevel:
		sort.Strings(out.levels)
	case OrderCount:
		sort.SliceStable(out.levels, func(i, j int) bool {
			return out.counts[out.levels[i]] > out.counts[out.levels[j]]
		})
	}
	return out
}
