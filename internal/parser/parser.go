package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/atikulmunna/logtally/internal/model"
)

// ErrMalformedLine is returned when a line does not have the
// "date time level message" shape.
var ErrMalformedLine = errors.New("malformed log line")

// Parser converts a raw log line into a structured LogRecord.
type Parser interface {
	Parse(line string) (model.LogRecord, error)
}

// FieldParser handles whitespace-separated lines of the form
//
//	2024-01-01 10:00:00 INFO Service started
//
// The date and time tokens are kept as text; the message is everything
// after the level token with its internal spacing untouched.
type FieldParser struct{}

func NewFieldParser() *FieldParser { return &FieldParser{} }

func (p *FieldParser) Parse(line string) (model.LogRecord, error) {
	line = strings.TrimSpace(line)

	date, rest, ok := cutField(line)
	if !ok {
		return model.LogRecord{}, malformed("expected date, time and level fields", line)
	}
	clock, rest, ok := cutField(rest)
	if !ok || rest == "" {
		return model.LogRecord{}, malformed("expected date, time and level fields", line)
	}
	level, message, ok := cutField(rest)
	if !ok || message == "" {
		return model.LogRecord{}, malformed("no message after level", line)
	}

	return model.LogRecord{
		Timestamp: date + " " + clock,
		Level:     level,
		Message:   message,
	}, nil
}

// cutField splits s at its first whitespace run. ok is false when s has
// no whitespace, i.e. there is nothing after the first token.
func cutField(s string) (head, tail string, ok bool) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, "", false
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace), true
}

func malformed(reason, line string) error {
	return fmt.Errorf("%w: %s: %q", ErrMalformedLine, reason, line)
}
