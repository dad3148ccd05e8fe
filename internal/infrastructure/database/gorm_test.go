package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name    string
		elapsed time.Duration
		err     error
		want    string // substring expected in the output, empty for no output
	}{
		{name: "fast query", elapsed: time.Millisecond},
		{name: "slow query", elapsed: 200 * time.Millisecond, want: "slow query"},
		{name: "real error", elapsed: time.Millisecond, err: errors.New("syntax error"), want: "query failed"},
		{name: "record not found", elapsed: time.Millisecond, err: gorm.ErrRecordNotFound},
		{name: "duplicate key", elapsed: time.Millisecond, err: gorm.ErrDuplicatedKey, want: `level=DEBUG msg="duplicate key"`},
		{name: "wrapped duplicate key", elapsed: time.Millisecond, err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: `level=DEBUG msg="duplicate key"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := newBufferLogger()
			l := NewGormLogger(log, 100*time.Millisecond)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), query, tt.err)

			out := buf.String()
			if tt.want == "" {
				if out != "" {
					t.Errorf("Trace() logged %q, want nothing", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) || !strings.Contains(out, "SELECT 1") {
				t.Errorf("Trace() logged %q, want %q with the SQL", out, tt.want)
			}
		})
	}
}

func TestGormLogger_Levels(t *testing.T) {
	log, buf := newBufferLogger()
	var l logger.Interface = NewGormLogger(log, 0)
	l = l.LogMode(logger.Info)

	ctx := context.Background()
	l.Info(ctx, "dropped %d", 1)
	if buf.Len() != 0 {
		t.Errorf("Info() logged %q, want nothing", buf.String())
	}

	l.Error(ctx, "cannot connect to %s", "db")
	if !strings.Contains(buf.String(), "cannot connect to db") {
		t.Errorf("Error() logged %q", buf.String())
	}

	// Zero threshold disables slow query reports
	buf.Reset()
	l.Trace(ctx, time.Now().Add(-time.Hour), func() (string, int64) { return "SELECT 1", 0 }, nil)
	if buf.Len() != 0 {
		t.Errorf("Trace() with zero threshold logged %q", buf.String())
	}
}

func TestGormLogger_NilLogger(t *testing.T) {
	l := NewGormLogger(nil, time.Millisecond)
	ctx := context.Background()

	l.Warn(ctx, "warn")
	l.Error(ctx, "error")
	l.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
}
