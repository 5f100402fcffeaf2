package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/oracle"
)

// DefaultThreshold は合格とみなす平均スコアの既定値です。
const DefaultThreshold = 7.0

// answerMaxTokens はスコアの回答に許すトークン数です。
const answerMaxTokens = 50

// Evaluator は1枚の画像を4つの質問で採点します。
type Evaluator struct {
	model   oracle.VisionModel
	useCase string
}

// NewEvaluator は依存関係を注入して Evaluator を生成します。
func NewEvaluator(model oracle.VisionModel, useCase string) (*Evaluator, error) {
	if model == nil {
		return nil, fmt.Errorf("model (oracle.VisionModel) is required")
	}
	return &Evaluator{model: model, useCase: useCase}, nil
}

// Score は画像のスコアを返します。質問ごとの失敗は 0 点として扱い、エラーは返しません。
func (e *Evaluator) Score(ctx context.Context, img domain.Image) domain.ScoreSet {
	var scores domain.ScoreSet
	for i, question := range Questions(e.useCase) {
		scores[i] = e.ask(ctx, img, question)
	}
	return scores
}

func (e *Evaluator) ask(ctx context.Context, img domain.Image, question string) int {
	slog.InfoContext(ctx, "質問します", "image", img.Name, "question", question)

	answer, err := oracle.Collect(e.model.Stream(ctx, img, question, oracle.GenerationOptions{MaxTokens: answerMaxTokens}))
	if err != nil {
		slog.WarnContext(ctx, "回答の取得に失敗しました。0点として扱います", "image", img.Name, "error", err)
		return 0
	}
	answer = strings.TrimSpace(answer)
	slog.InfoContext(ctx, "モデルの回答", "image", img.Name, "response", answer)

	score, ok := ParseScore(answer)
	if !ok {
		slog.WarnContext(ctx, "回答に有効なスコアがありません。0点として扱います", "image", img.Name, "response", answer)
		return 0
	}
	return score
}
