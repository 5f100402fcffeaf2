package adapters

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/imgutil"
	"github.com/shouni/style-bench-kit/pkg/oracle"
)

// contentStreamer は genai.Models のストリーミング生成部分です。
type contentStreamer interface {
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// GeminiVisionModel は Gemini に画像と質問を送り、回答をストリームで受け取ります。
type GeminiVisionModel struct {
	models   contentStreamer
	model    string
	compress bool
}

// NewGeminiVisionModel は依存関係を注入して GeminiVisionModel を初期化します。
// compress が true の場合、送信前に JPEG へ再圧縮します。
func NewGeminiVisionModel(models contentStreamer, model string, compress bool) (*GeminiVisionModel, error) {
	if models == nil {
		return nil, fmt.Errorf("models is required")
	}
	return &GeminiVisionModel{
		models:   models,
		model:    model,
		compress: compress,
	}, nil
}

// Stream は画像と質問文を Gemini に送り、テキスト断片のストリームを返します。
func (m *GeminiVisionModel) Stream(ctx context.Context, img domain.Image, prompt string, opts oracle.GenerationOptions) oracle.TextStream {
	if m.compress {
		img.Data = imgutil.ShrinkForUpload(img.Data, imgutil.DefaultQuality)
	}
	imgPart, err := toPart(img)
	if err != nil {
		return oracle.Failed(err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{imgPart, {Text: prompt}}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	slog.DebugContext(ctx, "Geminiに画像付きの質問を送信します", "model", m.model, "image", img.Name)

	chunks := m.models.GenerateContentStream(ctx, m.model, contents, config)
	return func(yield func(string, error) bool) {
		for chunk, err := range chunks {
			if err != nil {
				yield("", fmt.Errorf("Geminiストリーム受信エラー: %w", err))
				return
			}
			if chunk == nil {
				continue
			}
			if !yield(chunk.Text(), nil) {
				return
			}
		}
	}
}
