package adapters

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/oracle"
)

// chatChunkReader は openai.ChatCompletionStream の受信部分です。
type chatChunkReader interface {
	Recv() (openai.ChatCompletionStreamResponse, error)
	Close() error
}

// chatStreamOpener はチャット補完ストリームを開く関数です。
type chatStreamOpener func(ctx context.Context, req openai.ChatCompletionRequest) (chatChunkReader, error)

// openChatStream は *openai.Client を chatStreamOpener に変換します。
func openChatStream(client *openai.Client) chatStreamOpener {
	return func(ctx context.Context, req openai.ChatCompletionRequest) (chatChunkReader, error) {
		return client.CreateChatCompletionStream(ctx, req)
	}
}

// OpenAIVisionModel は OpenAI 互換 API (OpenAI 本家、llama.cpp server、vLLM など) の
// 画像入力対応チャットモデルです。
type OpenAIVisionModel struct {
	open  chatStreamOpener
	model string
}

// NewOpenAIVisionModel は依存関係を注入して初期化します。
func NewOpenAIVisionModel(open chatStreamOpener, model string) (*OpenAIVisionModel, error) {
	if open == nil {
		return nil, fmt.Errorf("stream opener is required")
	}
	return &OpenAIVisionModel{open: open, model: model}, nil
}

// Stream は画像を data URI として添付し、回答の差分をストリームで返します。
func (m *OpenAIVisionModel) Stream(ctx context.Context, img domain.Image, prompt string, opts oracle.GenerationOptions) oracle.TextStream {
	uri, err := toDataURI(img)
	if err != nil {
		return oracle.Failed(err)
	}

	req := openai.ChatCompletionRequest{
		Model:     m.model,
		MaxTokens: opts.MaxTokens,
		Stream:    true,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: uri, Detail: openai.ImageURLDetailAuto}},
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
				},
			},
		},
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}
	if opts.TopP != nil {
		req.TopP = *opts.TopP
	}

	return func(yield func(string, error) bool) {
		stream, err := m.open(ctx, req)
		if err != nil {
			yield("", fmt.Errorf("OpenAIストリーム開始エラー: %w", err))
			return
		}
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("OpenAIストリーム受信エラー: %w", err))
				return
			}
			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				if !yield(choice.Delta.Content, nil) {
					return
				}
			}
		}
	}
}

// imageCreator は *openai.Client の画像生成部分です。
type imageCreator interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

// OpenAIImageSynthesizer は OpenAI 互換の画像生成 API で画像を1枚作ります。
type OpenAIImageSynthesizer struct {
	client imageCreator
	model  string
	size   string
}

// NewOpenAIImageSynthesizer は依存関係を注入して初期化します。
func NewOpenAIImageSynthesizer(client imageCreator, model string) (*OpenAIImageSynthesizer, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	return &OpenAIImageSynthesizer{client: client, model: model, size: openai.CreateImageSize1024x1024}, nil
}

// openAISizes はアスペクト比を Images API のサイズに対応させます。
// 対応のない比率は既定のサイズになります。シードの指定はできません。
var openAISizes = map[string]string{
	"1:1":  openai.CreateImageSize1024x1024,
	"16:9": openai.CreateImageSize1792x1024,
	"9:16": openai.CreateImageSize1024x1792,
}

// Synthesize は b64_json 形式で画像を受け取りデコードします。
func (s *OpenAIImageSynthesizer) Synthesize(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error) {
	slog.DebugContext(ctx, "OpenAIに画像生成をリクエストします",
		"model", s.model, "steps", req.Steps, "guidance_scale", req.GuidanceScale)

	prompt := req.Prompt
	if req.NegativePrompt != "" {
		prompt += "\nAvoid: " + req.NegativePrompt
	}
	size := s.size
	if v, ok := openAISizes[req.AspectRatio]; ok {
		size = v
	}

	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          s.model,
		N:              1,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI画像生成エラー: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, ErrNoImage
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("画像データのデコードに失敗しました: %w", err)
	}

	return &domain.ImageResponse{
		Data:     data,
		MimeType: "image/png",
	}, nil
}
