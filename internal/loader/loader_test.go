package loader

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atikulmunna/logtally/internal/model"
	"github.com/atikulmunna/logtally/internal/parser"
)

const sample = `2024-01-01 10:00:00 INFO Service started
2024-01-01 10:05:00 ERROR Connection failed
2024-01-01 10:06:00 INFO Retrying connection
`

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/logs/app.log", sample)

	records, err := New(fsys, parser.NewFieldParser()).Load("/logs/app.log")
	require.NoError(t, err)

	want := []model.LogRecord{
		{Timestamp: "2024-01-01 10:00:00", Level: "INFO", Message: "Service started"},
		{Timestamp: "2024-01-01 10:05:00", Level: "ERROR", Message: "Connection failed"},
		{Timestamp: "2024-01-01 10:06:00", Level: "INFO", Message: "Retrying connection"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "app.log", "\n  \n2024-01-01 10:00:00 INFO a\n\n\t\n2024-01-01 10:00:01 INFO b")

	records, err := New(fsys, parser.NewFieldParser()).Load("app.log")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[1].Message)
}

func TestLoadEmptyFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "empty.log", "")

	records, err := New(fsys, parser.NewFieldParser()).Load("empty.log")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadTwiceIsEqual(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "app.log", sample)
	ld := New(fsys, parser.NewFieldParser())

	first, err := ld.Load("app.log")
	require.NoError(t, err)
	second, err := ld.Load("app.log")
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second load differs (-first +second):\n%s", diff)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := New(fsys, parser.NewFieldParser()).Load("/missing.log")
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.Contains(t, err.Error(), "/missing.log")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestLoadFailFast(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "bad.log", "2024-01-01 10:00:00 INFO ok\nbroken\n2024-01-01 10:00:02 INFO never reached\n")

	records, err := New(fsys, parser.NewFieldParser()).Load("bad.log")
	require.Error(t, err)

	assert.Nil(t, records)
	assert.True(t, errors.Is(err, parser.ErrMalformedLine))
	assert.Contains(t, err.Error(), "bad.log:2")
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, KindMalformed, KindOf(err))
}

func TestLoadLenient(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "bad.log", "2024-01-01 10:00:00 INFO ok\nbroken\n2024-01-01 10:00:02 ERROR still here\n")

	core, logs := observer.New(zapcore.WarnLevel)
	ld := New(fsys, parser.NewFieldParser(), WithLenient(true), WithLogger(zap.New(core)))

	records, err := ld.Load("bad.log")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "still here", records[1].Message)
	assert.Equal(t, 1, ld.Skipped())

	entries := logs.FilterMessage("skipping malformed line").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["line"])
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindOther, KindOf(errors.New("boom")))
	assert.Equal(t, "not-found", KindNotFound.String())
}
