package internal

import (
	"fmt"
	"os"
	"sync"
)

// Logger writes one line per generated file. A nil *Logger discards everything.
type Logger struct {
	mu sync.Mutex
	f  *os.File
}

func NewLogger(path string) (*Logger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Logger{f: f}, nil
}

func (l *Logger) Log(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, format+"\n", args...)
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}
