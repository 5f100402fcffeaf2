package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/shouni/style-bench-kit/pkg/oracle"
)

const (
	// FileEnv は YAML 設定ファイルのパスを指定する環境変数です。
	FileEnv = "STYLE_BENCH_CONFIG"
	// DefaultFile は FileEnv が未設定のときに存在すれば読む設定ファイルです。
	DefaultFile = "config.yaml"
)

var defaults = map[string]string{
	"VISION_PROVIDER": oracle.ProviderGemini,
	"VISION_MODEL":    "gemini-2.5-flash",
	"VISION_TIMEOUT":  "120",
	"SYNTH_PROVIDER":  oracle.ProviderImagen,
	"SYNTH_MODEL":     "imagen-4.0-generate-001",
	"SYNTH_TIMEOUT":   "300",
	"COMPRESS_IMAGES": "false",
	"HTTP_TIMEOUT":    "30",
	"LOG_LEVEL":       "info",
	"LOG_FORMAT":      "text",
}

var (
	visionProviders    = []string{oracle.ProviderGemini, oracle.ProviderOpenAI}
	synthesisProviders = []string{oracle.ProviderImagen, oracle.ProviderGemini, oracle.ProviderOpenAI}
	logFormats         = []string{"text", "json"}
)

// SynthOptions は画像生成の全リクエストに共通する任意のパラメータです。
type SynthOptions struct {
	NegativePrompt string
	AspectRatio    string
	// Seed は SYNTH_SEED が未設定なら nil です。
	Seed *int64
}

// Config はコマンド全体の設定です。
type Config struct {
	Vision         oracle.Config
	Synth          oracle.Config
	SynthOptions   SynthOptions
	CompressImages bool
	HTTPTimeout    time.Duration
	LogLevel       slog.Level
	LogFormat      string
}

// Load は既定値、YAML ファイル、.env、環境変数の順に設定を重ねて読み込みます。
// 後のものほど優先されます。API キーの検証はクライアント生成時に行います。
func Load() (*Config, error) {
	fileValues, err := loadFile()
	if err != nil {
		return nil, err
	}

	// .env は任意。既に設定されている環境変数は上書きされない
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	l := lookup{file: fileValues}
	cfg := &Config{
		Vision: oracle.Config{
			Provider: l.get("VISION_PROVIDER"),
			Endpoint: l.get("VISION_ENDPOINT"),
			Model:    l.get("VISION_MODEL"),
		},
		Synth: oracle.Config{
			Provider: l.get("SYNTH_PROVIDER"),
			Endpoint: l.get("SYNTH_ENDPOINT"),
			Model:    l.get("SYNTH_MODEL"),
		},
		SynthOptions: SynthOptions{
			NegativePrompt: l.get("SYNTH_NEGATIVE_PROMPT"),
			AspectRatio:    l.get("SYNTH_ASPECT_RATIO"),
		},
		LogFormat: strings.ToLower(l.get("LOG_FORMAT")),
	}
	cfg.Vision.APIKey = l.apiKey("VISION_API_KEY", cfg.Vision.Provider)
	cfg.Synth.APIKey = l.apiKey("SYNTH_API_KEY", cfg.Synth.Provider)

	if cfg.Vision.Timeout, err = l.seconds("VISION_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.Synth.Timeout, err = l.seconds("SYNTH_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = l.seconds("HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if v := l.get("SYNTH_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SYNTH_SEED is invalid: %w", err)
		}
		cfg.SynthOptions.Seed = &seed
	}
	if cfg.CompressImages, err = strconv.ParseBool(l.get("COMPRESS_IMAGES")); err != nil {
		return nil, fmt.Errorf("COMPRESS_IMAGES is invalid: %w", err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(l.get("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	if !lo.Contains(visionProviders, cfg.Vision.Provider) {
		return nil, fmt.Errorf("VISION_PROVIDER: %w: %q", oracle.ErrUnknownProvider, cfg.Vision.Provider)
	}
	if !lo.Contains(synthesisProviders, cfg.Synth.Provider) {
		return nil, fmt.Errorf("SYNTH_PROVIDER: %w: %q", oracle.ErrUnknownProvider, cfg.Synth.Provider)
	}
	if !lo.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("LOG_FORMAT must be one of %v: %q", logFormats, cfg.LogFormat)
	}
	return cfg, nil
}

// loadFile は YAML の設定ファイルを読み込みます。キーは環境変数名の小文字です。
// FileEnv で明示されたファイルが存在しない場合はエラーです。
func loadFile() (map[string]string, error) {
	path, explicit := os.LookupEnv(FileEnv)
	if !explicit || path == "" {
		path = DefaultFile
		explicit = false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました (%s): %w", path, err)
	}

	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("設定ファイルの形式が不正です (%s): %w", path, err)
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return values, nil
}

type lookup struct {
	file map[string]string
}

func (l lookup) get(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v, ok := l.file[key]; ok && v != "" {
		return v
	}
	return defaults[key]
}

// apiKey は専用キーがなければプロバイダ共通のキーを使います。
func (l lookup) apiKey(key, provider string) string {
	if v := l.get(key); v != "" {
		return v
	}
	return l.get(lo.Ternary(provider == oracle.ProviderOpenAI, "OPENAI_API_KEY", "GEMINI_API_KEY"))
}

func (l lookup) seconds(key string) (time.Duration, error) {
	n, err := strconv.Atoi(l.get(key))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of seconds: %q", key, l.get(key))
	}
	return time.Duration(n) * time.Second, nil
}
