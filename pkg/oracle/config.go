package oracle

import (
	"errors"
	"fmt"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderImagen = "imagen"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrMissingAPIKey   = errors.New("api key is required")
	ErrMissingModel    = errors.New("model is required")
)

// Config は1つのモデルクライアントの接続設定です。
// プロセス全体の環境変数ではなく、クライアント生成時に明示的に渡します。
type Config struct {
	Provider string
	Endpoint string // 空の場合はプロバイダの既定エンドポイント
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// Validate は providers に含まれるプロバイダかどうかと必須項目を検証します。
// OpenAI 互換のローカルサーバー (Endpoint 指定あり) は API キーなしを許容します。
func (c Config) Validate(providers ...string) error {
	known := false
	for _, p := range providers {
		if c.Provider == p {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q (allowed: %v)", ErrUnknownProvider, c.Provider, providers)
	}
	if c.Model == "" {
		return ErrMissingModel
	}
	if c.APIKey == "" && !(c.Provider == ProviderOpenAI && c.Endpoint != "") {
		return fmt.Errorf("%w for provider %s", ErrMissingAPIKey, c.Provider)
	}
	return nil
}
