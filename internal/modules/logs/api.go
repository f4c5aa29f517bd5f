package logs

import (
	"io"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/reusedev/meme-hub/config"
	"github.com/rs/zerolog"
)

var (
	Logger = zerolog.Nop()
)

// InitLogger writes JSON lines to the rotated log file from config.GConfig; at debug
// level and below, a human-readable copy also goes to stderr.
func InitLogger() {
	cfg := config.GConfig
	if cfg == nil {
		cfg = config.Default()
	}

	level := parseLogLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	logFile := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   true,
	}
	writers = append(writers, logFile)

	if level <= zerolog.DebugLevel {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
}

// SetOutput replaces the logger with one writing to w.
func SetOutput(w io.Writer) {
	Logger = zerolog.New(w).With().Timestamp().Logger()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
