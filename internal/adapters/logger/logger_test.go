package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/compat/internal/adapters/logger"
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Pretty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("resolving packages")
	l.Warn("disk cache entry unreadable")

	out := buf.String()
	assert.Contains(t, out, "resolving packages\n")
	assert.Contains(t, out, "! disk cache entry unreadable\n")
}

func TestLogger_RedirectedFileHasNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")

	f, err := os.Create(filepath.Join(t.TempDir(), "compat.log"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	l := logger.New()
	l.SetOutput(f)
	l.Warn("disk cache entry unreadable")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "! disk cache entry unreadable")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestLogger_Quiet(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	l.SetQuiet(true)

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	l.SetJSON(true)

	l.Error(zerr.With(zerr.New("lookup failed"), "package_id", "Contoso.Core"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "lookup failed", record["msg"])
	assert.Contains(t, record, "error")
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_PrettyError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Error(zerr.Wrap(errors.New("connection refused"), "fetch manifest"))

	out := buf.String()
	assert.Contains(t, out, "✗ Error: fetch manifest")
	assert.Contains(t, out, "  Caused by:")
	assert.Contains(t, out, "    → connection refused")
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "Error: boom",
		},
		{
			name: "wrapped with metadata",
			err: zerr.With(
				zerr.With(zerr.Wrap(domain.ErrBlobNotFound, "fetch document"), "key", "a.json.gz"),
				"bucket", "data",
			),
			want: "Error: fetch document (bucket=data key=a.json.gz)\n\n  Caused by:\n    → blob not found",
		},
		{
			name: "classified error",
			err:  domain.Classify(domain.ErrAllCheckersFailed, domain.ErrPackageNotFound),
			want: "Error: no compatibility checker could resolve package\n\n  Caused by:\n    → package not found",
		},
		{
			name: "metadata on a foreign error",
			err:  zerr.With(errors.New("unexpected EOF"), "path", "requests.yaml"),
			want: "Error: unexpected EOF (path=requests.yaml)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatError(tt.err))
		})
	}
}
