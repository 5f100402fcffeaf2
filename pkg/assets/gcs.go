package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/api/iterator"
)

// GCSReader は Cloud Storage のフォルダ (gs://bucket/prefix) を読む remoteio.InputReader です。
// Open は remoteio.UniversalInputReader に任せ、List だけをフォルダ直下に限定します。
// UniversalInputReader の List は前方一致でサブフォルダまで辿るためです。
type GCSReader struct {
	remoteio.InputReader
	client *storage.Client
}

var _ remoteio.InputReader = (*GCSReader)(nil)

// NewGCSReader は Application Default Credentials でクライアントを初期化します。
// STORAGE_EMULATOR_HOST が設定されていればエミュレータに接続します。
func NewGCSReader(ctx context.Context) (*GCSReader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCSクライアントの初期化に失敗しました: %w", err)
	}
	return &GCSReader{
		InputReader: remoteio.NewUniversalInputReader(client, nil),
		client:      client,
	}, nil
}

// List は gs://bucket/prefix 直下のオブジェクトの URI を fn に渡します。
// サブディレクトリ相当のプレフィックスは含みません。
func (r *GCSReader) List(ctx context.Context, uri string, fn func(string) error) error {
	bucket, query, err := folderQuery(uri)
	if err != nil {
		return err
	}

	it := r.client.Bucket(bucket).Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("GCSオブジェクト一覧の取得に失敗しました (%s): %w", uri, err)
		}
		if attrs.Name == "" || attrs.Name == query.Prefix {
			continue // サブフォルダ、またはフォルダ自身を表す0バイトオブジェクト
		}
		if err := fn("gs://" + bucket + "/" + attrs.Name); err != nil {
			return err
		}
	}
}

// Close はクライアントを閉じます。
func (r *GCSReader) Close() error {
	return r.client.Close()
}

// folderQuery は gs:// のフォルダ URI を直下だけを返す一覧クエリに変換します。
func folderQuery(uri string) (string, *storage.Query, error) {
	bucket, prefix, err := remoteio.ParseGCSURI(uri)
	if err != nil {
		return "", nil, err
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return bucket, &storage.Query{Prefix: prefix, Delimiter: "/"}, nil
}
