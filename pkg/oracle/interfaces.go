package oracle

import (
	"context"
	"iter"

	"github.com/shouni/style-bench-kit/pkg/domain"
)

// TextStream はモデルが返すテキスト断片の有限なシーケンスです。
// 一度しか走査できません。
type TextStream = iter.Seq2[string, error]

// GenerationOptions はテキスト生成時のサンプリング設定です。
// nil のフィールドはバックエンドの既定値を使います。
type GenerationOptions struct {
	MaxTokens   int
	Temperature *float32
	TopP        *float32
}

// VisionModel は画像と質問文を受け取り、回答をストリームで返すモデルです。
type VisionModel interface {
	Stream(ctx context.Context, img domain.Image, prompt string, opts GenerationOptions) TextStream
}

// Synthesizer はプロンプトから画像を1枚生成するモデルです。
type Synthesizer interface {
	Synthesize(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error)
}
