package mixfence

import (
	"log/slog"
	"os"
)

// Logger 全局日志记录器
var Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})).
	With(slog.String("component", "mixfence"))

// SetLogger 设置自定义日志记录器
func SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	Logger = logger
}
