package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(msg, tag string) slog.Record {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	return r
}

func handled(t *testing.T, cfg Config, recs ...slog.Record) string {
	t.Helper()
	cfg.process()
	var buf bytes.Buffer
	h := newFilteringHandler(slog.NewTextHandler(&buf, nil), &cfg)
	for _, r := range recs {
		require.NoError(t, h.Handle(context.Background(), r))
	}
	return buf.String()
}

func TestTagFilters(t *testing.T) {
	recs := []slog.Record{record("plain", ""), record("ring", "session"), record("saved", "Recents")}

	out := handled(t, Config{}, recs...)
	assert.Contains(t, out, "plain")
	assert.Contains(t, out, "ring")
	assert.Contains(t, out, "saved")

	out = handled(t, Config{EnabledTags: []string{"recents"}}, recs...)
	assert.NotContains(t, out, "plain")
	assert.NotContains(t, out, "ring")
	assert.Contains(t, out, "saved")

	out = handled(t, Config{DisabledTags: []string{"SESSION"}}, recs...)
	assert.Contains(t, out, "plain")
	assert.NotContains(t, out, "ring")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("err"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestSliceToSet(t *testing.T) {
	assert.Nil(t, sliceToSet(nil))
	assert.Nil(t, sliceToSet([]string{""}))
	assert.Equal(t, map[string]struct{}{"a": {}}, sliceToSet([]string{"A", "a"}))
}
