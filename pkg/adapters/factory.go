package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/style-bench-kit/pkg/oracle"
)

// geminiMaxRetries は go-gemini-client が一時的なエラーに対して行うリトライ回数です。
// 0 を渡してもライブラリの既定値 1 になるため、明示しておきます。
const geminiMaxRetries = 1

// VisionProviders はスコアリング・プロンプト生成に使えるプロバイダです。
var VisionProviders = []string{oracle.ProviderGemini, oracle.ProviderOpenAI}

// SynthesisProviders は画像生成に使えるプロバイダです。
var SynthesisProviders = []string{oracle.ProviderImagen, oracle.ProviderGemini, oracle.ProviderOpenAI}

// NewVisionModel は設定に応じた VisionModel を生成します。
func NewVisionModel(ctx context.Context, cfg oracle.Config, compress bool) (oracle.VisionModel, error) {
	if err := cfg.Validate(VisionProviders...); err != nil {
		return nil, fmt.Errorf("vision model config: %w", err)
	}

	switch cfg.Provider {
	case oracle.ProviderOpenAI:
		return NewOpenAIVisionModel(openChatStream(newOpenAIClient(cfg)), cfg.Model)
	default:
		client, err := newGenAIClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewGeminiVisionModel(client.Models, cfg.Model, compress)
	}
}

// NewSynthesizer は設定に応じた Synthesizer を生成します。
func NewSynthesizer(ctx context.Context, cfg oracle.Config) (oracle.Synthesizer, error) {
	if err := cfg.Validate(SynthesisProviders...); err != nil {
		return nil, fmt.Errorf("synthesizer config: %w", err)
	}

	switch cfg.Provider {
	case oracle.ProviderOpenAI:
		return NewOpenAIImageSynthesizer(newOpenAIClient(cfg), cfg.Model)
	case oracle.ProviderGemini:
		if cfg.Endpoint != "" {
			slog.WarnContext(ctx, "Gemini画像生成はエンドポイントの上書きに対応していないため無視します", "endpoint", cfg.Endpoint)
		}
		client, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.APIKey, MaxRetries: geminiMaxRetries})
		if err != nil {
			return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
		}
		syn, err := NewGeminiImageSynthesizer(client, cfg.Model)
		if err != nil {
			return nil, err
		}
		syn.timeout = cfg.Timeout
		return syn, nil
	default:
		client, err := newGenAIClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewImagenSynthesizer(client.Models, cfg.Model)
	}
}

func newGenAIClient(ctx context.Context, cfg oracle.Config) (*genai.Client, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.Endpoint != "" {
		clientConfig.HTTPOptions.BaseURL = cfg.Endpoint
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの初期化に失敗しました: %w", err)
	}
	return client, nil
}

func newOpenAIClient(cfg oracle.Config) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return openai.NewClientWithConfig(clientConfig)
}
