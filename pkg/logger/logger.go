package logger

import (
	"io"
	"log"
)

type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l *log.Logger
}

// New returns a logger writing through the standard log package
func New() Logger { return &stdLogger{l: log.Default()} }

// NewWriter returns a logger writing to w with the standard flags
func NewWriter(w io.Writer) Logger { return &stdLogger{l: log.New(w, "", log.LstdFlags)} }

func (l *stdLogger) Infof(format string, v ...any)  { l.l.Printf("[INFO] "+format, v...) }
func (l *stdLogger) Errorf(format string, v ...any) { l.l.Printf("[ERROR] "+format, v...) }
