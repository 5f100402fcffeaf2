// evaluate-images はフォルダ内の画像を画風への適合度で採点し、閾値以上の画像を出力フォルダにコピーします。
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/shouni/style-bench-kit/cmd/internal/cli"
	"github.com/shouni/style-bench-kit/pkg/adapters"
	"github.com/shouni/style-bench-kit/pkg/evaluator"
)

type options struct {
	inputFolder  string
	outputFolder string
	useCase      string
	threshold    float64
}

func main() {
	var opts options
	flag.StringVar(&opts.inputFolder, "input-folder", "", "Folder (or gs:// prefix) containing the generated images.")
	flag.StringVar(&opts.outputFolder, "output-folder", evaluator.DefaultOutputFolder, "Folder to copy images that pass the evaluation.")
	flag.StringVar(&opts.useCase, "use-case", "", "The style the images should match.")
	flag.Float64Var(&opts.threshold, "threshold", evaluator.DefaultThreshold, "Minimum average score required to keep an image.")
	flag.Parse()
	cli.RequireFlags(flag.CommandLine, "input-folder", "use-case")

	if err := mainImpl(context.Background(), opts); err != nil {
		slog.Error("画像の評価に失敗しました", "error", err)
		os.Exit(1)
	}
}

func mainImpl(ctx context.Context, opts options) error {
	cfg, err := cli.Setup()
	if err != nil {
		return err
	}

	model, err := adapters.NewVisionModel(ctx, cfg.Vision, cfg.CompressImages)
	if err != nil {
		return err
	}
	ev, err := evaluator.NewEvaluator(model, opts.useCase)
	if err != nil {
		return err
	}
	source, closeSource, err := cli.NewSource(ctx, opts.inputFolder)
	if err != nil {
		return err
	}
	defer closeSource()

	filter, err := evaluator.NewFilter(ev, source, opts.outputFolder, opts.threshold)
	if err != nil {
		return err
	}
	report, err := filter.Run(ctx)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "評価が完了しました",
		"considered", report.Considered,
		"passed", len(report.Passed),
		"failed", len(report.Failed),
		"output", opts.outputFolder,
	)
	return nil
}
