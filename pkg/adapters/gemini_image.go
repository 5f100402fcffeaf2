package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/utils"
)

// ContentGenerator はパーツを送って Gemini の生レスポンスを受け取る通信クライアントです。
// 本番では *gemini.Client がリトライ付きで実装します。
type ContentGenerator interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

var _ ContentGenerator = (*gemini.Client)(nil)

// GeminiImageSynthesizer は Gemini の画像生成モデルでプロンプトから画像を作ります。
type GeminiImageSynthesizer struct {
	aiClient ContentGenerator
	model    string
	// timeout は1リクエストあたりの上限です。0 なら呼び出し元の ctx に従います。
	timeout time.Duration
}

// NewGeminiImageSynthesizer は依存関係を注入して初期化します。
func NewGeminiImageSynthesizer(aiClient ContentGenerator, model string) (*GeminiImageSynthesizer, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	return &GeminiImageSynthesizer{
		aiClient: aiClient,
		model:    model,
	}, nil
}

// Synthesize はドメインのリクエストを Gemini API の形式に変換して実行します。
// Gemini の画像モデルにはステップ数やガイダンスの指定がないため、ログにのみ残します。
func (s *GeminiImageSynthesizer) Synthesize(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error) {
	slog.DebugContext(ctx, "Geminiに画像生成をリクエストします",
		"model", s.model, "steps", req.Steps, "guidance_scale", req.GuidanceScale)

	prompt := req.Prompt
	if req.NegativePrompt != "" {
		prompt += "\nAvoid: " + req.NegativePrompt
	}
	parts := []*genai.Part{{Text: prompt}}
	opts := gemini.GenerateOptions{
		AspectRatio: req.AspectRatio,
		Seed:        req.Seed,
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.aiClient.GenerateWithParts(ctx, s.model, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("Gemini画像生成エラー: %w", err)
	}

	out, err := parseToResponse(resp, utils.DereferenceSeed(req.Seed))
	if err != nil {
		return nil, fmt.Errorf("レスポンスパースに失敗しました: %w", err)
	}
	return out, nil
}
