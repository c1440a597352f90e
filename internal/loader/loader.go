package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/atikulmunna/logtally/internal/model"
	"github.com/atikulmunna/logtally/internal/parser"
)

// maxLineSize bounds a single log line; bufio's 64KB default is too small
// for stack traces squeezed onto one line.
const maxLineSize = 1 << 20

// ErrFileNotFound is returned when the log file path does not resolve.
var ErrFileNotFound = errors.New("file not found")

// Loader reads a log file and parses every non-empty line into a LogRecord.
type Loader struct {
	fs      afero.Fs
	parser  parser.Parser
	logger  *zap.Logger
	lenient bool
	skipped int
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithLenient makes Load skip malformed lines instead of aborting.
func WithLenient(lenient bool) Option {
	return func(ld *Loader) { ld.lenient = lenient }
}

// New creates a Loader that reads from fsys and parses with p.
func New(fsys afero.Fs, p parser.Parser, opts ...Option) *Loader {
	ld := &Loader{
		fs:     fsys,
		parser: p,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load returns the records of every non-empty line of path, in file order.
// Unless the Loader is lenient, the first malformed line aborts the load.
func (ld *Loader) Load(path string) ([]model.LogRecord, error) {
	ld.skipped = 0

	f, err := ld.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []model.LogRecord
	lineNo := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := ld.parser.Parse(line)
		if err != nil {
			if !ld.lenient {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			ld.skipped++
			ld.logger.Warn("skipping malformed line",
				zap.String("path", path),
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	ld.logger.Debug("log file loaded",
		zap.String("path", path),
		zap.Int("lines", lineNo),
		zap.Int("records", len(records)),
		zap.Int("skipped", ld.skipped))

	return records, nil
}

// Skipped returns how many malformed lines the last lenient Load dropped.
func (ld *Loader) Skipped() int {
	return ld.skipped
}
