package promptgen

import (
	"context"
	"fmt"
	"os"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/oracle"
)

// mockVisionModel は呼び出しごとに番号付きのプロンプトを返すのだ。
type mockVisionModel struct {
	failAt   int // 1 始まり。0 なら失敗しない
	calls    int
	images   []domain.Image
	prompts  []string
	lastOpts oracle.GenerationOptions
}

func (m *mockVisionModel) Stream(ctx context.Context, img domain.Image, prompt string, opts oracle.GenerationOptions) oracle.TextStream {
	m.calls++
	m.images = append(m.images, img)
	m.prompts = append(m.prompts, prompt)
	m.lastOpts = opts
	if m.failAt == m.calls {
		return oracle.Failed(fmt.Errorf("model unavailable"))
	}
	return oracle.Fragments("  a bright sun over ", fmt.Sprintf("field %d \n", m.calls))
}

// fileLoader はローカルファイルだけを読むローダーなのだ。読んだパスを記録するのだ。
type fileLoader struct {
	loaded []string
	exists []bool
}

func (l *fileLoader) Load(ctx context.Context, ref string) (domain.Image, error) {
	l.loaded = append(l.loaded, ref)
	data, err := os.ReadFile(ref)
	l.exists = append(l.exists, err == nil)
	if err != nil {
		return domain.Image{}, err
	}
	return domain.Image{Name: ref, Data: data, MimeType: "image/jpeg"}, nil
}
