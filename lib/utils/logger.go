package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Logger interface
type Logger interface {
	// Same as fmt.Printf
	Println(...interface{})
}

// Log type for Println
type Log func(msg ...interface{})

// Println interface
func (l Log) Println(msg ...interface{}) {
	l(msg...)
}

// LoggerQuiet does nothing
var LoggerQuiet Logger = Log(func(_ ...interface{}) {})

type zapLogger struct {
	l *zap.Logger
}

// Zap adapts a zap logger to the Logger interface, each Println becomes one debug entry.
func Zap(l *zap.Logger) Logger {
	if l == nil {
		l = zap.L()
	}
	return &zapLogger{l: l}
}

func (z *zapLogger) Println(msg ...interface{}) {
	z.l.Debug(strings.TrimRight(fmt.Sprintln(msg...), "\n"))
}
