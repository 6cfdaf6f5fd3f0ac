// Package ylog provides the slog.Logger used by datagen.
// The default logger is built from environment:
//
//	DATAGEN_LOG_LEVEL=debug DATAGEN_LOG_FORMAT=json datagen serve
//
// ylog allows to call log api directly, like:
//
//	ylog.Debug("payload built", "unique", 12)
//	ylog.Info("listening", "addr", ":7774")
//	ylog.Error("encode payload", err)
package ylog

import (
	"log"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v6"
)

var defaultLogger = Default()

// SetDefault set global logger.
func SetDefault(logger *slog.Logger) { defaultLogger = logger }

// Logger returns the global logger.
func Logger() *slog.Logger { return defaultLogger }

// Debug logs a message at debug level.
func Debug(msg string, keyvals ...any) {
	defaultLogger.Debug(msg, keyvals...)
}

// Info logs a message at info level.
func Info(msg string, keyvals ...any) {
	defaultLogger.Info(msg, keyvals...)
}

// Warn logs a message at warn level.
func Warn(msg string, keyvals ...any) {
	defaultLogger.Warn(msg, keyvals...)
}

// Error logs a message at error level.
func Error(msg string, err error, keyvals ...any) {
	defaultLogger.Error(msg, append([]any{"err", err}, keyvals...)...)
}

// Config is the config of slog, the config is from environment.
type Config struct {
	// Verbose indicates if logger log code line.
	Verbose bool `env:"DATAGEN_LOG_VERBOSE" envDefault:"false"`

	// the log level, It's one of `debug`, `info`, `warn`, `error`
	Level string `env:"DATAGEN_LOG_LEVEL" envDefault:"info"`

	// log output file path, It's stdout if not set.
	Output string `env:"DATAGEN_LOG_OUTPUT"`

	// error log output file path, It's stderr if not set.
	ErrorOutput string `env:"DATAGEN_LOG_ERROR_OUTPUT"`

	// text or json.
	Format string `env:"DATAGEN_LOG_FORMAT" envDefault:"text"`

	// DisableTime disable time key, It's a pretty option for testing.
	DisableTime bool `env:"DATAGEN_LOG_DISABLE_TIME" envDefault:"false"`

	// MaxSize is the maximum size in megabytes of a log file before it gets rotated.
	MaxSize int `env:"DATAGEN_LOG_MAX_SIZE" envDefault:"100"`

	// MaxBackups is the maximum number of rotated log files to retain.
	MaxBackups int `env:"DATAGEN_LOG_MAX_BACKUPS" envDefault:"3"`
}

// ParseConfig reads Config from environment.
func ParseConfig() (Config, error) {
	var conf Config
	err := env.Parse(&conf)
	return conf, err
}

// Default returns a slog.Logger according to enviroment.
func Default() *slog.Logger {
	conf, err := ParseConfig()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
	return NewFromConfig(conf)
}

// NewFromConfig returns a slog.Logger according to conf.
func NewFromConfig(conf Config) *slog.Logger {
	return slog.New(NewHandlerFromConfig(conf))
}

func parseToSlogLevel(stringLevel string) slog.Level {
	var level = slog.LevelDebug
	switch strings.ToLower(stringLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return level
}
