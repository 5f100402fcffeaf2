package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shouni/style-bench-kit/pkg/assets"
	"github.com/shouni/style-bench-kit/pkg/domain"
)

// DefaultOutputFolder は合格画像のコピー先の既定値です。
const DefaultOutputFolder = "benchmark_filtered"

// Filter はフォルダ内の画像を採点し、閾値以上の画像を出力先にコピーします。
type Filter struct {
	evaluator *Evaluator
	source    assets.Source
	outputDir string
	threshold float64
}

// NewFilter は依存関係を注入して Filter を生成します。
func NewFilter(evaluator *Evaluator, source assets.Source, outputDir string, threshold float64) (*Filter, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if source == nil {
		return nil, fmt.Errorf("source is required")
	}
	return &Filter{
		evaluator: evaluator,
		source:    source,
		outputDir: outputDir,
		threshold: threshold,
	}, nil
}

// Run はすべての画像を順に評価します。
// 入力フォルダを列挙できない場合と出力先を作れない場合のみエラーを返します。
func (f *Filter) Run(ctx context.Context) (*domain.FilterReport, error) {
	if err := f.ensureOutputDir(ctx); err != nil {
		return nil, err
	}

	names, err := f.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("入力フォルダの読み込みに失敗しました (%s): %w", f.source, err)
	}
	slog.InfoContext(ctx, "評価対象の画像が見つかりました", "count", len(names), "input", f.source.String())

	report := &domain.FilterReport{Considered: len(names)}
	for _, name := range names {
		eval := f.evaluate(ctx, name)
		if eval.Passed {
			report.Passed = append(report.Passed, name)
		} else {
			report.Failed = append(report.Failed, name)
		}
	}
	return report, nil
}

func (f *Filter) evaluate(ctx context.Context, name string) domain.Evaluation {
	slog.InfoContext(ctx, "画像を評価します", "image", name)

	data, err := f.source.Read(ctx, name)
	var scores domain.ScoreSet
	if err != nil {
		slog.WarnContext(ctx, "画像を読み込めませんでした。全質問0点として扱います", "image", name, "error", err)
	} else {
		scores = f.evaluator.Score(ctx, domain.Image{Name: name, Data: data})
	}

	eval := domain.Evaluation{
		ImageName: name,
		Scores:    scores,
		Average:   scores.Average(),
	}
	eval.Passed = Passes(eval.Average, f.threshold)
	slog.InfoContext(ctx, "最終スコア", "image", name, "scores", scores[:], "average", fmt.Sprintf("%.2f", eval.Average))

	if !eval.Passed || err != nil {
		slog.InfoContext(ctx, "❌ 不合格です。出力フォルダにはコピーしません", "image", name, "average", fmt.Sprintf("%.2f", eval.Average))
		return eval
	}

	dst := filepath.Join(f.outputDir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		// コピーに失敗しても残りの画像の評価は続ける
		slog.ErrorContext(ctx, "合格画像のコピーに失敗しました", "image", name, "dst", dst, "error", err)
		return eval
	}
	slog.InfoContext(ctx, "✅ 合格しました", "image", name, "average", fmt.Sprintf("%.2f", eval.Average), "saved_to", f.outputDir)
	return eval
}

func (f *Filter) ensureOutputDir(ctx context.Context) error {
	if _, err := os.Stat(f.outputDir); err == nil {
		return nil
	}
	if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
		return fmt.Errorf("出力フォルダの作成に失敗しました (%s): %w", f.outputDir, err)
	}
	slog.InfoContext(ctx, "出力フォルダを作成しました", "output", f.outputDir)
	return nil
}
