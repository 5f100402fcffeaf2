package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/imgutil"
	"github.com/shouni/style-bench-kit/pkg/oracle"
	"github.com/shouni/style-bench-kit/pkg/promptgen"
)

const (
	// DefaultPromptFile は読み込むプロンプトファイルです。
	DefaultPromptFile = "generated_prompts.json"
	// DefaultOutputFolder は生成画像の保存先です。
	DefaultOutputFolder = "generated_images"

	// InferenceSteps と GuidanceScale は高速な蒸留モデル向けの固定値です。
	InferenceSteps = 8
	GuidanceScale  = 1.0
)

// Options は全てのプロンプトに共通して付ける任意の生成パラメータです。
// ゼロ値ならプロバイダの既定に任せます。
type Options struct {
	NegativePrompt string
	AspectRatio    string
	Seed           *int64
}

// Runner はプロンプトごとに1枚ずつ画像を生成して保存します。
type Runner struct {
	synthesizer oracle.Synthesizer
	opts        Options
}

// NewRunner は依存関係を注入して Runner を生成します。
func NewRunner(synthesizer oracle.Synthesizer, opts Options) (*Runner, error) {
	if synthesizer == nil {
		return nil, errors.New("synthesizer (oracle.Synthesizer) is required")
	}
	return &Runner{synthesizer: synthesizer, opts: opts}, nil
}

// ImagePath は i 番目 (0 始まり) のプロンプトに対応する保存先を返します。
func ImagePath(outputDir string, i int) string {
	return filepath.Join(outputDir, fmt.Sprintf("image_%d.png", i+1))
}

// Run は promptFile の全プロンプトについて画像を生成します。
// 最初の失敗で中断し、それまでに保存した画像は残します。
func (r *Runner) Run(ctx context.Context, promptFile, outputDir string) ([]string, error) {
	if _, err := os.Stat(outputDir); err != nil {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("出力フォルダの作成に失敗しました (%s): %w", outputDir, err)
		}
		slog.InfoContext(ctx, "出力フォルダを作成しました", "output", outputDir)
	}

	prompts, err := promptgen.LoadPrompts(promptFile)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "プロンプトを読み込みました", "count", len(prompts), "file", promptFile)

	saved := make([]string, 0, len(prompts))
	for i, prompt := range prompts {
		slog.InfoContext(ctx, "画像を生成します", "index", i+1, "total", len(prompts), "prompt", prompt)

		path, err := r.generate(ctx, prompt, ImagePath(outputDir, i))
		if err != nil {
			return saved, fmt.Errorf("画像 %d/%d の生成に失敗しました: %w", i+1, len(prompts), err)
		}
		saved = append(saved, path)
		slog.InfoContext(ctx, "画像を保存しました", "path", path)
	}
	return saved, nil
}

func (r *Runner) generate(ctx context.Context, prompt, path string) (string, error) {
	resp, err := r.synthesizer.Synthesize(ctx, domain.SynthesisRequest{
		Prompt:         prompt,
		NegativePrompt: r.opts.NegativePrompt,
		AspectRatio:    r.opts.AspectRatio,
		Seed:           r.opts.Seed,
		Steps:          InferenceSteps,
		GuidanceScale:  GuidanceScale,
	})
	if err != nil {
		return "", err
	}

	data, err := imgutil.EnsurePNG(resp.Data)
	if err != nil {
		return "", fmt.Errorf("生成結果を PNG に変換できません (%s): %w", resp.MimeType, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("画像の書き込みに失敗しました (%s): %w", path, err)
	}
	return path, nil
}
