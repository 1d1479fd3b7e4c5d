package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode      bool
	CurrentLevel   LogLevel = LevelWarn
	ShowRaylibInfo bool
	ShowDebugUI    bool
)

var logger = zap.NewNop().Sugar()

// LogConfig mirrors the log section of the config file.
type LogConfig struct {
	Level      string
	File       string
	ShowCaller bool
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLevel maps a config string onto a LogLevel. Unknown strings fall back to warn.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	}
	return LevelWarn
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.WarnLevel
}

// InitLogger builds the global logger. An empty File logs to stderr.
func InitLogger(cfg LogConfig) error {
	level := ParseLevel(cfg.Level)
	if DebugMode {
		level = LevelDebug
	}
	CurrentLevel = level

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level = zap.NewAtomicLevelAt(level.zapLevel())
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.StacktraceKey = ""
	if !cfg.ShowCaller {
		config.EncoderConfig.CallerKey = ""
	}
	if cfg.File != "" {
		config.OutputPaths = []string{cfg.File}
	} else {
		config.OutputPaths = []string{"stderr"}
	}

	built, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	SetLogger(built)
	return nil
}

// SetLogger swaps the backend. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l.Sugar()
	zap.ReplaceGlobals(l)
}

// Sync flushes buffered entries.
func Sync() {
	_ = logger.Sync()
}

func Info(format string, v ...interface{})  { logger.Infof(format, v...) }
func Debug(format string, v ...interface{}) { logger.Debugf(format, v...) }
func Warn(format string, v ...interface{})  { logger.Warnf(format, v...) }
func Error(format string, v ...interface{}) { logger.Errorf(format, v...) }

func Infow(msg string, kv ...interface{})  { logger.Infow(msg, kv...) }
func Debugw(msg string, kv ...interface{}) { logger.Debugw(msg, kv...) }
func Warnw(msg string, kv ...interface{})  { logger.Warnw(msg, kv...) }
func Errorw(msg string, kv ...interface{}) { logger.Errorw(msg, kv...) }

func RaylibLogCallback(level int, text string) {
	formatted := "[RAYLIB] " + text
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		Debug("%s", formatted)
	case 3: // LOG_INFO
		if ShowRaylibInfo {
			Info("%s", formatted)
		} else {
			Debug("%s", formatted)
		}
	case 4: // LOG_WARNING
		Warn("%s", formatted)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		Error("%s", formatted)
	}
}
