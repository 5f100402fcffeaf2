package assets

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// imageExtensions は評価対象とする拡張子です。大文字小文字は区別します。
var imageExtensions = []string{".png", ".jpg", ".jpeg"}

// HasImageExtension は name が評価対象の拡張子で終わるかを返します。
func HasImageExtension(name string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Source は評価対象の画像を列挙・読み出すフォルダです。
type Source interface {
	// List はフォルダ直下の画像ファイル名を返します。
	List(ctx context.Context) ([]string, error)
	// Read はファイル名で画像を読み出します。
	Read(ctx context.Context, name string) ([]byte, error)
	// String は表示用のフォルダ名です。
	String() string
}

// LocalDir はローカルディレクトリの Source です。
type LocalDir struct {
	Dir string
}

func (d LocalDir) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !HasImageExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (d LocalDir) Read(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.Dir, name))
}

func (d LocalDir) String() string { return d.Dir }

// RemoteDir は remoteio.InputReader 上のフォルダ (gs://bucket/prefix) の Source です。
type RemoteDir struct {
	Reader remoteio.InputReader
	URI    string
}

func (d RemoteDir) List(ctx context.Context) ([]string, error) {
	var names []string
	err := d.Reader.List(ctx, d.URI, func(uri string) error {
		name := path.Base(uri)
		if HasImageExtension(name) {
			names = append(names, name)
		}
		return nil
	})
	return names, err
}

func (d RemoteDir) Read(ctx context.Context, name string) ([]byte, error) {
	rc, err := d.Reader.Open(ctx, strings.TrimSuffix(d.URI, "/")+"/"+name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (d RemoteDir) String() string { return d.URI }
