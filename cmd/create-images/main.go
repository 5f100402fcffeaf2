// create-images は generated_prompts.json の各プロンプトから1枚ずつ画像を生成し、
// generated_images/image_N.png として保存します。引数は取りません。
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/shouni/style-bench-kit/cmd/internal/cli"
	"github.com/shouni/style-bench-kit/pkg/adapters"
	"github.com/shouni/style-bench-kit/pkg/synth"
)

func main() {
	if err := mainImpl(context.Background()); err != nil {
		slog.Error("画像生成に失敗しました", "error", err)
		os.Exit(1)
	}
}

func mainImpl(ctx context.Context) error {
	cfg, err := cli.Setup()
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "画像生成モデルを準備しています", "provider", cfg.Synth.Provider, "model", cfg.Synth.Model)
	synthesizer, err := adapters.NewSynthesizer(ctx, cfg.Synth)
	if err != nil {
		return err
	}
	runner, err := synth.NewRunner(synthesizer, synth.Options{
		NegativePrompt: cfg.SynthOptions.NegativePrompt,
		AspectRatio:    cfg.SynthOptions.AspectRatio,
		Seed:           cfg.SynthOptions.Seed,
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "画像生成を開始します")
	saved, err := runner.Run(ctx, synth.DefaultPromptFile, synth.DefaultOutputFolder)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "画像生成が完了しました", "count", len(saved))
	return nil
}
