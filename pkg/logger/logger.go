package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var std atomic.Pointer[slog.Logger]

func init() {
	std.Store(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

// Init configures the process-wide logger for the given environment.
// Production gets JSON at info level, everything else text at debug level.
func Init(environment string) {
	var h slog.Handler
	switch strings.ToLower(environment) {
	case "production", "prod":
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	SetLogger(slog.New(h))
}

func SetLogger(l *slog.Logger) {
	std.Store(l)
	slog.SetDefault(l)
}

func L() *slog.Logger {
	return std.Load()
}

func Debug(msg string, args ...any) {
	L().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	L().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	L().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	L().Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	L().Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize turns loose call-site arguments into slog attributes:
// errors become error=..., string keys pair with the next value,
// anything left over becomes detail=...
func normalize(args []any) []any {
	out := make([]any, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case slog.Attr:
			out = append(out, v)
		case error:
			out = append(out, slog.Any("error", v))
		case string:
			if i+1 < len(args) {
				out = append(out, slog.Any(v, args[i+1]))
				i++
				continue
			}
			out = append(out, slog.String("detail", v))
		default:
			out = append(out, slog.Any("detail", v))
		}
	}
	return out
}
