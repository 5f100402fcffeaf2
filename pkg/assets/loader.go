package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/style-bench-kit/pkg/domain"
)

// ErrNotFound はローカルの参照画像が存在しない場合のエラーです。
var ErrNotFound = errors.New("image not found")

// HTTPClient は URL からデータを取得するためのインターフェースです。
// httpkit.Client は取得前に SSRF 検証を行うため、Loader 側では URL を検査しません。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Loader はローカルパス、http(s) URL、gs:// URI から画像を読み込みます。
type Loader struct {
	httpClient HTTPClient
	reader     remoteio.InputReader
}

// NewLoader は依存関係を注入して Loader を生成します。
// httpClient と reader が nil の場合、対応するスキームはエラーになります。
func NewLoader(httpClient HTTPClient, reader remoteio.InputReader) *Loader {
	return &Loader{httpClient: httpClient, reader: reader}
}

// IsRemote はローカルファイル以外の参照かどうかを返します。
func IsRemote(ref string) bool {
	return remoteio.IsGCSURI(ref) || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Load は ref の画像を読み込みます。
func (l *Loader) Load(ctx context.Context, ref string) (domain.Image, error) {
	data, err := l.fetch(ctx, ref)
	if err != nil {
		return domain.Image{}, err
	}
	return domain.Image{
		Name:     baseName(ref),
		Data:     data,
		MimeType: http.DetectContentType(data),
	}, nil
}

func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case remoteio.IsGCSURI(ref):
		if l.reader == nil {
			return nil, fmt.Errorf("gs:// を読むための reader が設定されていません: %s", ref)
		}
		rc, err := l.reader.Open(ctx, ref)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	case IsRemote(ref):
		if l.httpClient == nil {
			return nil, fmt.Errorf("URL を取得するための httpClient が設定されていません: %s", ref)
		}
		return l.httpClient.FetchBytes(ctx, ref)
	default:
		data, err := os.ReadFile(ref)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return data, err
	}
}

func baseName(ref string) string {
	if IsRemote(ref) {
		return path.Base(ref)
	}
	return filepath.Base(ref)
}
