package suite

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

const maxWaitDuration = 60 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger
}

// testWriter forwards log lines to the test output so they show up only for failing or verbose runs.
type testWriter struct {
	t *testing.T
}

func (that testWriter) Write(p []byte) (int, error) {
	that.t.Helper()
	that.t.Log(strings.TrimRight(string(p), "\n"))

	return len(p), nil
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(testWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
	}
}
