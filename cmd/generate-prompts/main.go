// generate-prompts は参照画像と画風から画像生成用のプロンプトを作り、JSON 配列として保存します。
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/style-bench-kit/cmd/internal/cli"
	"github.com/shouni/style-bench-kit/pkg/adapters"
	"github.com/shouni/style-bench-kit/pkg/assets"
	"github.com/shouni/style-bench-kit/pkg/promptgen"
)

func main() {
	useCase := flag.String("use-case", "", "The style or use case for the generated prompts (e.g., children's drawings, vintage Polaroid).")
	numPrompts := flag.Int("num-prompts", promptgen.DefaultCount, "Number of prompts to generate.")
	outputFile := flag.String("output-file", "", "Path to save the generated prompts as JSON.")
	tempImage := flag.String("temp-image", "", "Path or URL of a single image that represents the benchmark. If not provided, a white image is created and used.")
	flag.Parse()
	cli.RequireFlags(flag.CommandLine, "use-case", "output-file")

	if *tempImage != "" && !assets.IsRemote(*tempImage) {
		if _, err := os.Stat(*tempImage); err != nil {
			fmt.Fprintf(os.Stderr, "Error: The specified image path does not exist: %s\n", *tempImage)
			os.Exit(1)
		}
	}

	req := promptgen.Request{
		UseCase:        *useCase,
		Count:          *numPrompts,
		ReferenceImage: *tempImage,
		OutputFile:     *outputFile,
	}
	if err := mainImpl(context.Background(), req); err != nil {
		slog.Error("プロンプト生成に失敗しました", "error", err)
		os.Exit(1)
	}
}

func mainImpl(ctx context.Context, req promptgen.Request) error {
	cfg, err := cli.Setup()
	if err != nil {
		return err
	}

	model, err := adapters.NewVisionModel(ctx, cfg.Vision, cfg.CompressImages)
	if err != nil {
		return err
	}
	loader, closeLoader, err := cli.NewLoader(ctx, cfg, req.ReferenceImage)
	if err != nil {
		return err
	}
	defer closeLoader()

	generator, err := promptgen.NewGenerator(model, loader)
	if err != nil {
		return err
	}
	return generator.Run(ctx, req)
}
