package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/atikulmunna/logtally/internal/aggregator"
	"github.com/atikulmunna/logtally/internal/config"
	"github.com/atikulmunna/logtally/internal/filter"
	"github.com/atikulmunna/logtally/internal/loader"
	"github.com/atikulmunna/logtally/internal/output"
	"github.com/atikulmunna/logtally/internal/parser"
)

const usage = "Usage: logtally path/to/logfile.log [log_level]"

// run is the single place where failures become user-facing messages.
// Load and parse failures are printed, never returned.
func run(out io.Writer, fsys afero.Fs, cfg *config.Config, logger *zap.Logger, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(out, usage)
		return nil
	}

	path := args[0]
	var level string
	if len(args) > 1 {
		level = strings.ToUpper(args[1])
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected failure", zap.Any("panic", r))
			fmt.Fprintf(out, "An error occurred: %v\n", r)
		}
	}()

	if err := tally(out, fsys, cfg, logger, path, level); err != nil {
		logger.Debug("run failed",
			zap.String("kind", loader.KindOf(err).String()),
			zap.Error(err))

		switch loader.KindOf(err) {
		case loader.KindNotFound:
			fmt.Fprintf(out, "Error: File not found - %s\n", path)
		default:
			fmt.Fprintf(out, "An error occurred: %v\n", err)
		}
	}
	return nil
}

// tally runs load -> count -> (filter) -> render.
func tally(out io.Writer, fsys afero.Fs, cfg *config.Config, logger *zap.Logger, path, level string) error {
	order, err := aggregator.ParseOrder(cfg.Output.Sort)
	if err != nil {
		return err
	}
	renderer, err := output.New(cfg.Output.Format, out, cfg.Output.Color)
	if err != nil {
		return err
	}

	ld := loader.New(fsys, parser.NewFieldParser(),
		loader.WithLenient(cfg.Parse.Lenient),
		loader.WithLogger(logger))

	records, err := ld.Load(path)
	if err != nil {
		return err
	}
	if n := ld.Skipped(); n > 0 {
		logger.Warn("malformed lines skipped", zap.String("path", path), zap.Int("count", n))
	}

	rep := output.Report{Counts: aggregator.Count(records).Sorted(order)}
	if level != "" {
		rep.Level = level
		rep.Details = filter.ByLevel(records, level)
	}

	return renderer.Render(rep)
}
