package gekko

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger is a zap-backed Logger. The level can be flipped between
// debug and info at runtime.
type DefaultLogger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
	file  *lumberjack.Logger
}

// LogFileConfig controls the optional rotating log file.
type LogFileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func DefaultLogFileConfig(path string) LogFileConfig {
	return LogFileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return newDefaultLogger(prefix, debug, stdoutSyncer(), LogFileConfig{})
}

// NewFileLogger logs to stdout and to a rotating file.
func NewFileLogger(prefix string, debug bool, fileCfg LogFileConfig) *DefaultLogger {
	return newDefaultLogger(prefix, debug, stdoutSyncer(), fileCfg)
}

// stdoutSyncer hides os.Stdout's Sync: stdout is unbuffered and fsync fails
// with EINVAL on terminals and pipes.
func stdoutSyncer() zapcore.WriteSyncer {
	return zapcore.AddSync(struct{ io.Writer }{os.Stdout})
}

func newDefaultLogger(prefix string, debug bool, console zapcore.WriteSyncer, fileCfg LogFileConfig) *DefaultLogger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05.000000"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}

	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), console, level))
	}

	var file *lumberjack.Logger
	if fileCfg.Path != "" {
		file = &lumberjack.Logger{
			Filename:   fileCfg.Path,
			MaxSize:    fileCfg.MaxSizeMB,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAgeDays,
			Compress:   fileCfg.Compress,
			LocalTime:  true,
		}
		fileEncoderCfg := encoderCfg
		fileEncoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(fileEncoderCfg), zapcore.AddSync(file), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	if prefix != "" {
		logger = logger.Named(prefix)
	}

	return &DefaultLogger{
		level: level,
		sugar: logger.Sugar(),
		file:  file,
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered entries and closes the log file, if any.
func (l *DefaultLogger) Sync() error {
	err := l.sugar.Sync()
	if l.file != nil {
		err = errors.Join(err, l.file.Close())
	}
	return err
}

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
	// File enables rotating file output next to stdout
	File string
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	var logger *DefaultLogger
	if m.File != "" {
		logger = NewFileLogger(m.Prefix, m.Debug, DefaultLogFileConfig(m.File))
	} else {
		logger = NewDefaultLogger(m.Prefix, m.Debug)
	}
	app.addResources(logger)
}

// Nop logger and App helper accessor

type nopLogger struct{}

func NewNopLogger() Logger                             { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
