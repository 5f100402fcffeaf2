package promptgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/imgutil"
	"github.com/shouni/style-bench-kit/pkg/oracle"
)

// ImageLoader は参照画像を読み込むためのインターフェースです。
type ImageLoader interface {
	Load(ctx context.Context, ref string) (domain.Image, error)
}

// Request はプロンプト生成の入力です。
type Request struct {
	UseCase string
	Count   int
	// ReferenceImage が空の場合は白い仮画像を使います。
	ReferenceImage string
	OutputFile     string
}

// Generator は参照画像と画風から画像生成用のプロンプトを作ります。
type Generator struct {
	model  oracle.VisionModel
	loader ImageLoader
	// tempDir は仮画像の置き場所です。空なら os.TempDir() を使います。
	tempDir string
}

// NewGenerator は依存関係を注入して Generator を生成します。
func NewGenerator(model oracle.VisionModel, loader ImageLoader) (*Generator, error) {
	if model == nil {
		return nil, errors.New("model (oracle.VisionModel) is required")
	}
	if loader == nil {
		return nil, errors.New("loader is required")
	}
	return &Generator{model: model, loader: loader}, nil
}

// Run は Count 件のプロンプトを生成して OutputFile に保存します。
// Count が 0 以下なら空の配列を書き出します。途中で失敗した場合はファイルを書き出しません。
func (g *Generator) Run(ctx context.Context, req Request) (err error) {
	ref := req.ReferenceImage
	if ref == "" {
		ref, err = imgutil.WritePlaceholderJPEG(g.tempDir)
		if err != nil {
			return fmt.Errorf("白画像の作成に失敗しました: %w", err)
		}
		slog.InfoContext(ctx, "白画像を作成しました", "path", ref)
		defer func() {
			if rmErr := os.Remove(ref); rmErr != nil {
				slog.WarnContext(ctx, "一時画像の削除に失敗しました", "path", ref, "error", rmErr)
				return
			}
			slog.InfoContext(ctx, "一時画像を削除しました", "path", ref)
		}()
	} else {
		slog.InfoContext(ctx, "指定された参照画像を使用します", "image", ref)
	}

	img, err := g.loader.Load(ctx, ref)
	if err != nil {
		return fmt.Errorf("参照画像の読み込みに失敗しました: %w", err)
	}

	prompts, err := g.Generate(ctx, img, req.UseCase, req.Count)
	if err != nil {
		return err
	}
	if err := SavePrompts(req.OutputFile, prompts); err != nil {
		return err
	}
	slog.InfoContext(ctx, "プロンプトを保存しました", "count", len(prompts), "output", req.OutputFile)
	return nil
}

// Generate は同じ画像と指示文で count 回モデルを呼び、結果を呼び出し順に返します。
func (g *Generator) Generate(ctx context.Context, img domain.Image, useCase string, count int) ([]string, error) {
	instruction := Instruction(useCase)
	temperature, topP := promptTemperature, promptTopP
	opts := oracle.GenerationOptions{
		MaxTokens:   promptMaxTokens,
		Temperature: &temperature,
		TopP:        &topP,
	}

	prompts := make([]string, 0, max(count, 0))
	for i := range count {
		text, err := oracle.Collect(g.model.Stream(ctx, img, instruction, opts))
		if err != nil {
			return nil, fmt.Errorf("プロンプト %d/%d の生成に失敗しました: %w", i+1, count, err)
		}
		description := strings.TrimSpace(text)
		prompts = append(prompts, description)
		slog.InfoContext(ctx, "プロンプトを生成しました", "index", i+1, "total", count, "prompt", description)
	}
	return prompts, nil
}
