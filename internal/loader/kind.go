package loader

import (
	"errors"

	"github.com/atikulmunna/logtally/internal/parser"
)

// Kind classifies a load failure for the user-facing boundary.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindMalformed
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not-found"
	case KindMalformed:
		return "malformed"
	default:
		return "other"
	}
}

// KindOf returns the Kind of err. A nil error is KindNone.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrFileNotFound):
		return KindNotFound
	case errors.Is(err, parser.ErrMalformedLine):
		return KindMalformed
	default:
		return KindOther
	}
}
