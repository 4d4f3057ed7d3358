package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	Verbose bool
	Debug   bool
	// File receives every message, uncolored, when set.
	File io.Writer
}

// NewFileSink returns a size-rotated log file writer.
func NewFileSink(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

func (l Logger) Infof(msg string, args ...any) {
	l.record("info", msg, args...)
	if l.Verbose {
		fmt.Fprintf(os.Stdout, color.GreenString("[info] ")+msg+"\n", args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	l.record("debug", msg, args...)
	if l.Debug {
		fmt.Fprintf(os.Stdout, color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	l.record("warn", msg, args...)
	fmt.Fprintf(os.Stderr, color.YellowString("[warn] ")+msg+"\n", args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	l.record("error", msg, args...)
	fmt.Fprintf(os.Stderr, color.RedString("[error] ")+msg+"\n", args...)
}

// ErrorfAndReturn logs the error when debugging and returns it. The format
// may use %w.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	l.record("error", "%s", err.Error())
	if l.Debug {
		fmt.Fprintln(os.Stderr, color.RedString("[error] ")+err.Error())
	}
	return err
}

func (l Logger) record(level, msg string, args ...any) {
	if l.File == nil {
		return
	}
	fmt.Fprintf(l.File, "%s [%s] %s\n", time.Now().Format(time.RFC3339), level, fmt.Sprintf(msg, args...))
}
