// Package cli は3つのコマンドに共通する起動処理をまとめます。
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/style-bench-kit/pkg/assets"
	"github.com/shouni/style-bench-kit/pkg/config"
	"github.com/shouni/style-bench-kit/pkg/logging"
)

// Setup は設定を読み込み、標準エラー出力へのロガーを既定のロガーとして設定します。
func Setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))
	return cfg, nil
}

// MissingFlags は names のうちコマンドラインで指定されなかったフラグを返します。
func MissingFlags(fs *flag.FlagSet, names ...string) []string {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var missing []string
	for _, name := range names {
		if !set[name] {
			missing = append(missing, "--"+name)
		}
	}
	return missing
}

// CheckArgs は位置引数と未指定の必須フラグを検査し、問題があればその旨を返します。
func CheckArgs(fs *flag.FlagSet, names ...string) string {
	if fs.NArg() > 0 {
		return "unrecognized arguments: " + strings.Join(fs.Args(), " ")
	}
	if missing := MissingFlags(fs, names...); len(missing) > 0 {
		return "the following arguments are required: " + strings.Join(missing, ", ")
	}
	return ""
}

// RequireFlags は CheckArgs が失敗すれば使い方を表示して終了コード 2 で終了します。
func RequireFlags(fs *flag.FlagSet, names ...string) {
	msg := CheckArgs(fs, names...)
	if msg == "" {
		return
	}
	fmt.Fprintln(fs.Output(), msg)
	fs.Usage()
	os.Exit(2)
}

// NewLoader は ref の種類に応じたクライアントを持つ Loader を返します。
// 返される close は必ず呼び出してください。
func NewLoader(ctx context.Context, cfg *config.Config, ref string) (*assets.Loader, func(), error) {
	if remoteio.IsGCSURI(ref) {
		factory, err := gcsfactory.New(ctx)
		if err != nil {
			return nil, nil, err
		}
		reader, err := factory.InputReader()
		if err != nil {
			_ = factory.Close()
			return nil, nil, err
		}
		return assets.NewLoader(nil, reader), closeReader(ctx, factory), nil
	}

	var httpClient httpkit.ClientInterface = httpkit.New(cfg.HTTPTimeout)
	return assets.NewLoader(httpClient, nil), func() {}, nil
}

// NewSource は入力フォルダ (ローカルまたは gs://) の Source を返します。
func NewSource(ctx context.Context, folder string) (assets.Source, func(), error) {
	if !remoteio.IsGCSURI(folder) {
		return assets.LocalDir{Dir: folder}, func() {}, nil
	}
	reader, err := assets.NewGCSReader(ctx)
	if err != nil {
		return nil, nil, err
	}
	return assets.RemoteDir{Reader: reader, URI: folder}, closeReader(ctx, reader), nil
}

func closeReader(ctx context.Context, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			slog.WarnContext(ctx, "GCSクライアントのクローズに失敗しました", "error", err)
		}
	}
}
