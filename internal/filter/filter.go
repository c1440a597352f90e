package filter

import (
	"strings"

	"github.com/atikulmunna/logtally/internal/model"
)

// ByLevel returns the records whose level equals level, ignoring case.
// Relative order is preserved; no match yields an empty slice.
func ByLevel(records []model.LogRecord, level string) []model.LogRecord {
	out := make([]model.LogRecord, 0)
	for _, r := range records {
		if strings.EqualFold(r.Level, level) {
			out = append(out, r)
		}
	}
	return out
}
