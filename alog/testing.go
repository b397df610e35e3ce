package alog

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test returns a logger for unit tests, logging text at LevelDebug into memory.
// It offers assertions on the logged lines, following stretchr/testify:
// every assertion returns whether it was successful.
func Test(t *testing.T) *TestLogger {
	if t == nil {
		panic("t is nil")
	}

	buf := &testBuffer{}

	return &TestLogger{
		Logger: New(
			WithLevel(LevelDebug),
			WithHandler(slog.NewTextHandler(buf, debugHandlerOptions())),
		),
		t:   t,
		buf: buf,
	}
}

// TestLogger can be injected as a logger dependency
// and asserts on all the lines logged with it.
type TestLogger struct {
	*slog.Logger

	t   *testing.T
	buf *testBuffer
}

var (
	_ Logger  = (*TestLogger)(nil)
	_ Leveler = (*TestLogger)(nil)
)

func (l *TestLogger) SetLevel(level slog.Level) {
	Unwrap(l.Logger).SetLevel(level)
}

func (l *TestLogger) Level() slog.Level {
	return Unwrap(l.Logger).Level()
}

// String returns the complete log output.
func (l *TestLogger) String() string {
	return strings.Join(l.Lines(), "")
}

func (l *TestLogger) Lines() []string {
	return l.buf.all()
}

// Empty asserts that the logger has no lines logged.
func (l *TestLogger) Empty(msgAndArgs ...any) bool {
	l.t.Helper()

	if n := len(l.Lines()); n > 0 {
		return assert.Fail(l.t, fmt.Sprintf("logger is not empty, it has %d line(s)", n), msgAndArgs...)
	}

	return true
}

// NotEmpty asserts that the logger has at least one line.
func (l *TestLogger) NotEmpty(msgAndArgs ...any) bool {
	l.t.Helper()

	if len(l.Lines()) == 0 {
		return assert.Fail(l.t, "logger is empty, should not be", msgAndArgs...)
	}

	return true
}

// Contains asserts that at least one line contains the substring contains.
func (l *TestLogger) Contains(contains string, msgAndArgs ...any) bool {
	l.t.Helper()

	for _, line := range l.Lines() {
		if strings.Contains(line, contains) {
			return true
		}
	}

	return assert.Fail(l.t, "log output does not have a line which contains: "+contains, msgAndArgs...)
}

// NotContains asserts that no line contains the substring notContains.
func (l *TestLogger) NotContains(notContains string, msgAndArgs ...any) bool {
	l.t.Helper()

	for _, line := range l.Lines() {
		if strings.Contains(line, notContains) {
			return assert.Fail(l.t, "log output contains: "+notContains+", should not be", msgAndArgs...)
		}
	}

	return true
}

// Total asserts that the logger has exactly total lines logged.
func (l *TestLogger) Total(total int, msgAndArgs ...any) bool {
	l.t.Helper()

	if n := len(l.Lines()); n != total {
		return assert.Fail(l.t, fmt.Sprintf("logger does not have %d lines, it has: %d", total, n), msgAndArgs...)
	}

	return true
}

// testBuffer keeps each write as its own line. slog handlers write a record with a single call.
type testBuffer struct {
	mu    sync.Mutex
	lines []*bytes.Buffer
}

func (b *testBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	line := &bytes.Buffer{}
	n, _ := line.Write(p)

	b.lines = append(b.lines, line)

	return n, nil
}

func (b *testBuffer) all() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := make([]string, 0, len(b.lines))
	for _, line := range b.lines {
		lines = append(lines, line.String())
	}

	return lines
}
