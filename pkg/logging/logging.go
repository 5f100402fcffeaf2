package logging

import (
	"io"
	"log/slog"

	"github.com/samber/lo"
)

// New は CLI 向けのロガーを生成します。format が "json" なら JSON、それ以外はテキストで出力します。
// タイムスタンプは出力しません。
func New(w io.Writer, level slog.Leveler, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return lo.Ternary(a.Key == slog.TimeKey, slog.Attr{}, a)
		},
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
