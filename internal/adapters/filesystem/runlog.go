// Package filesystem contains file-backed adapters: the plain-text run log.
package filesystem

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RunLog writes timestamped plain-text lines to a file in the destination
// directory. It is the durable record of a run; the summary shown to the
// caller is derived from the same events.
type RunLog struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	path   string
}

// NewRunLog creates the log file `worksort_<runID>.log` under dir.
func NewRunLog(dir, runID string) (*RunLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("worksort_%s.log", runID))
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log: %w", err)
	}
	return &RunLog{
		file:   file,
		writer: bufio.NewWriter(file),
		path:   path,
	}, nil
}

// Printf appends one timestamped line.
func (l *RunLog) Printf(format string, args ...any) {
	l.write("", format, args...)
}

// Warnf appends one timestamped warning line.
func (l *RunLog) Warnf(format string, args ...any) {
	l.write("WARN ", format, args...)
}

func (l *RunLog) write(prefix, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer == nil {
		return
	}
	stamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.writer, "%s  %s%s\n", stamp, prefix, fmt.Sprintf(format, args...))
}

// Path returns the log file location.
func (l *RunLog) Path() string {
	return l.path
}

// Close flushes and closes the log. Further writes are dropped.
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer == nil {
		return nil
	}
	flushErr := l.writer.Flush()
	closeErr := l.file.Close()
	l.writer = nil
	l.file = nil
	if flushErr != nil {
		return fmt.Errorf("failed to flush run log: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close run log: %w", closeErr)
	}
	return nil
}
