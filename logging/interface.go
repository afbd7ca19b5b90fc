package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/runningwild/glop/glog"
)

type stdLogInterceptor interface {
	Printf(format string, v ...interface{})
}

type Logger interface {
	glog.Logger
	stdLogInterceptor
}

type shipyardLogger struct {
	glog.Logger
}

func (log *shipyardLogger) Printf(msg string, args ...interface{}) {
	log.Logger.Log(context.Background(), slog.LevelInfo, msg, args...)
}

var _ Logger = (*shipyardLogger)(nil)

var debugLogger *shipyardLogger
var infoLogger *shipyardLogger
var warnLogger *shipyardLogger
var errorLogger *shipyardLogger

// glog only knows how to trim source paths under its own trim points, so
// source attribution is done here instead; see doLog.
func newLogger(lvl slog.Level) *shipyardLogger {
	return &shipyardLogger{
		Logger: glog.New(&glog.Opts{
			Level:          lvl,
			DoNotAddSource: true,
		}),
	}
}

func init() {
	debugLogger = newLogger(slog.LevelDebug)
	infoLogger = newLogger(slog.LevelInfo)
	warnLogger = newLogger(slog.LevelWarn)
	errorLogger = newLogger(slog.LevelError)
}

func DefaultLogger() Logger {
	return InfoLogger()
}

func DebugLogger() Logger {
	return debugLogger
}

func InfoLogger() Logger {
	return infoLogger
}

func WarnLogger() Logger {
	return warnLogger
}

func ErrorLogger() Logger {
	return errorLogger
}

func Debug(msg string, args ...interface{}) {
	doLog(slog.LevelDebug, msg, args...)
}

func Info(msg string, args ...interface{}) {
	doLog(slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...interface{}) {
	doLog(slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...interface{}) {
	doLog(slog.LevelError, msg, args...)
}

func Trace(msg string, args ...interface{}) {
	doLog(glog.LevelTrace, msg, args...)
}

// Call this to redirect all logging output to the given io.Writer. A cleanup
// function that undoes the redirect is returned.
func Redirect(newOut io.Writer) func() {
	oldDebugLogger := debugLogger
	oldInfoLogger := infoLogger
	oldWarnLogger := warnLogger
	oldErrorLogger := errorLogger

	redirect := func(l *shipyardLogger) *shipyardLogger {
		return &shipyardLogger{Logger: glog.WithRedirect(l, newOut)}
	}
	debugLogger = redirect(oldDebugLogger)
	infoLogger = redirect(oldInfoLogger)
	warnLogger = redirect(oldWarnLogger)
	errorLogger = redirect(oldErrorLogger)

	return func() {
		debugLogger = oldDebugLogger
		infoLogger = oldInfoLogger
		warnLogger = oldWarnLogger
		errorLogger = oldErrorLogger
	}
}

// CallerKey names the attribute that points at the code that logged.
const CallerKey = "caller"

// The package-level helpers all funnel through the 'default' logger so that
// SetLogLevel governs them. Records carry a 'caller' attribute pointing at the
// caller of the helper rather than at this file.
func doLog(lvl slog.Level, msg string, args ...interface{}) {
	if !infoLogger.Enabled(context.Background(), lvl) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // skip [Callers, doLog, <helper>]
	r := slog.NewRecord(time.Now(), lvl, msg, 0)
	r.AddAttrs(slog.String(CallerKey, callerOf(pcs[0])))
	r.Add(args...)
	infoLogger.Handler().Handle(context.Background(), r)
}

// Formats pc as 'dir/file.go:line'.
func callerOf(pc uintptr) string {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return "unknown"
	}
	file := filepath.Join(filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File))
	return fmt.Sprintf("%s:%d", filepath.ToSlash(file), frame.Line)
}

// Tells the 'Default Logger' to changes its verbosity.
func SetLogLevel(lvl slog.Level) {
	infoLogger.Logger = glog.Relevel(infoLogger.Logger, lvl)
}

// Like SetLogLevel but returns a func that restores the previous verbosity.
func SetLoggingLevel(lvl slog.Level) func() {
	old := infoLogger.Logger
	infoLogger.Logger = glog.Relevel(old, lvl)
	return func() {
		infoLogger.Logger = old
	}
}
