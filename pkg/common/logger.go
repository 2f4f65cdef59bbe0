package common

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// LogOptions controls where the process logger writes and how much. The
// logger is built lazily on first use, before LoadConfig runs, so it reads
// its own env keys.
type LogOptions struct {
	Dir        string
	FileLevel  zapcore.Level
	Production bool
}

// LogOptionsFromEnv reads TPMS_LOG_DIR and TPMS_LOG_LEVEL. The directory
// defaults to ./logs and the file level to info.
func LogOptionsFromEnv() (LogOptions, error) {
	opts := LogOptions{FileLevel: zap.InfoLevel, Production: IsProduction()}

	opts.Dir = strings.TrimSpace(os.Getenv(EnvKeyTPMSLogDir))
	if opts.Dir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return opts, fmt.Errorf("getting current directory: %w", err)
		}
		opts.Dir = filepath.Join(dir, "logs")
	}

	if level := strings.TrimSpace(os.Getenv(EnvKeyTPMSLogLevel)); level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %w", EnvKeyTPMSLogLevel, err)
		}
		opts.FileLevel = parsed
	}

	return opts, nil
}

// NewLogger writes JSON to a rotated <Dir>/app.log. Outside production it
// also tees a debug console stream to stdout.
func NewLogger(opts LogOptions) (*zap.Logger, error) {
	if err := os.MkdirAll(opts.Dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("find/create logs directory: %w", err)
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, "app.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28,   // days
		Compress:   true, // gzip
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(logFile),
		opts.FileLevel,
	)

	if !opts.Production {
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.DebugLevel)
		core = zapcore.NewTee(core, consoleCore)
	}

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func getLogger() *zap.Logger {
	if logger == nil {
		initLogger()
	}
	return logger
}

func GetLogger() *zap.Logger {
	logger = getLogger()
	return logger.Named("default")
}

// GetLoggerWith returns a named child of the process logger. Callers fetch it
// per operation so test capture loggers installed later are honoured.
func GetLoggerWith(name string, fields ...zap.Field) *zap.Logger {
	logger = getLogger()
	return logger.Named(name).With(fields...)
}

// GetCategoryLogger is GetLoggerWith for the usual name + category pair.
func GetCategoryLogger(name, category string) *zap.Logger {
	return GetLoggerWith(name, zap.String(LoggerFieldTPMSCategory, category))
}

func initLogger() {
	once.Do(func() {
		opts, err := LogOptionsFromEnv()
		if err != nil {
			log.Fatalf("Error reading log options: %v", err)
		}
		if logger, err = NewLogger(opts); err != nil {
			log.Fatalf("Error creating logger: %v", err)
		}
	})
}

func SetTestCaptureLogger(buf *bytes.Buffer, level zapcore.Level) {
	_ = GetLogger()

	writer := zapcore.AddSync(buf)
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	core := zapcore.NewCore(encoder, writer, level)
	logger = zap.New(core)
}

func SetTestLoggerNop() {
	_ = GetLogger()

	logger = zap.NewNop()
}
