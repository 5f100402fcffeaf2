package evaluator

import (
	"context"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/oracle"
)

// mockVisionModel は oracle.VisionModel のテスト用モックなのだ。
// streamFunc が nil の場合は answers を順番に返すのだ。
type mockVisionModel struct {
	streamFunc func(img domain.Image, prompt string) oracle.TextStream
	answers    []string
	calls      []string
	lastOpts   oracle.GenerationOptions
}

func (m *mockVisionModel) Stream(ctx context.Context, img domain.Image, prompt string, opts oracle.GenerationOptions) oracle.TextStream {
	m.calls = append(m.calls, prompt)
	m.lastOpts = opts
	if m.streamFunc != nil {
		return m.streamFunc(img, prompt)
	}
	if len(m.answers) == 0 {
		return oracle.Fragments()
	}
	a := m.answers[0]
	m.answers = m.answers[1:]
	return oracle.Fragments(a)
}
