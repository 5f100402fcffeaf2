package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/utils"
)

// imageGenerator は genai.Models の Imagen 呼び出し部分です。
type imageGenerator interface {
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// ImagenSynthesizer は Imagen でプロンプトから画像を1枚生成します。
type ImagenSynthesizer struct {
	models imageGenerator
	model  string
}

// NewImagenSynthesizer は依存関係を注入して初期化します。
func NewImagenSynthesizer(models imageGenerator, model string) (*ImagenSynthesizer, error) {
	if models == nil {
		return nil, fmt.Errorf("models is required")
	}
	return &ImagenSynthesizer{models: models, model: model}, nil
}

// Synthesize は PNG 1枚を要求します。Imagen にはステップ数の指定がないためログにのみ残します。
func (s *ImagenSynthesizer) Synthesize(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error) {
	slog.DebugContext(ctx, "Imagenに画像生成をリクエストします",
		"model", s.model, "steps", req.Steps, "guidance_scale", req.GuidanceScale)

	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		NegativePrompt: req.NegativePrompt,
		AspectRatio:    req.AspectRatio,
		OutputMIMEType: "image/png",
		Seed:           utils.SeedToPtrInt32(req.Seed),
	}
	if req.GuidanceScale > 0 {
		config.GuidanceScale = genai.Ptr(float32(req.GuidanceScale))
	}

	resp, err := s.models.GenerateImages(ctx, s.model, req.Prompt, config)
	if err != nil {
		return nil, fmt.Errorf("Imagen画像生成エラー: %w", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, ErrNoImage
	}

	generated := resp.GeneratedImages[0]
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		if generated.RAIFilteredReason != "" {
			return nil, fmt.Errorf("画像が安全フィルターでブロックされました: %s", generated.RAIFilteredReason)
		}
		return nil, ErrNoImage
	}

	return &domain.ImageResponse{
		Data:     generated.Image.ImageBytes,
		MimeType: generated.Image.MIMEType,
		UsedSeed: utils.DereferenceSeed(req.Seed),
	}, nil
}
