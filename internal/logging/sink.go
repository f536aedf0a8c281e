package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink writes each log line to a file named after the current UTC date and
// mirrors it to a console writer. Lines are prefixed with an ISO-8601
// timestamp in brackets. Use it with log.SetOutput and log.SetFlags(0).
type Sink struct {
	Dir     string
	Console io.Writer
	Now     func() time.Time

	mu   sync.Mutex
	day  string
	file *os.File
}

// NewSink creates a Sink writing into dir, mirroring to stdout.
func NewSink(dir string) *Sink {
	return &Sink{Dir: dir, Console: os.Stdout, Now: time.Now}
}

// FileName returns the log file name for the UTC date of t.
func FileName(t time.Time) string {
	return "hbd_savings_log_" + t.UTC().Format("02012006") + ".txt"
}

func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()
	line := fmt.Sprintf("[%s] %s", now.Format("2006-01-02T15:04:05.000Z"), p)
	if len(p) == 0 || p[len(p)-1] != '\n' {
		line += "\n"
	}

	if s.Console != nil {
		_, _ = io.WriteString(s.Console, line)
	}
	f, err := s.fileFor(now)
	if err != nil {
		return 0, err
	}
	if _, err := f.WriteString(line); err != nil {
		return 0, err
	}
	return len(p), nil
}

// fileFor returns the append handle for t's day, rotating when the date changes.
func (s *Sink) fileFor(t time.Time) (*os.File, error) {
	day := t.Format("2006-01-02")
	if s.file != nil && s.day == day {
		return s.file, nil
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(s.Dir, FileName(t)), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	s.file, s.day = f, day
	return f, nil
}

// Close closes the current log file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
