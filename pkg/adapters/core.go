package adapters

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/style-bench-kit/pkg/domain"
)

var (
	// ErrNotImage は送信しようとしたデータが画像として認識できない場合のエラーです。
	ErrNotImage = errors.New("data is not an image")
	// ErrNoImage はモデルの応答に画像が含まれていない場合のエラーです。
	ErrNoImage = errors.New("画像データが見つかりませんでした")
)

// detectImageMIME は画像データの MIME タイプを判定します。
// 宣言済みの MIME タイプより実データの判定を優先します。
func detectImageMIME(img domain.Image) (string, error) {
	mimeType := http.DetectContentType(img.Data)
	if strings.HasPrefix(mimeType, "image/") {
		return mimeType, nil
	}
	if strings.HasPrefix(img.MimeType, "image/") {
		return img.MimeType, nil
	}
	return "", fmt.Errorf("%w: %s (detected %s)", ErrNotImage, img.Name, mimeType)
}

// toPart はバイト列を genai.Part (InlineData) に変換します。
func toPart(img domain.Image) (*genai.Part, error) {
	mimeType, err := detectImageMIME(img)
	if err != nil {
		return nil, err
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: mimeType,
			Data:     img.Data,
		},
	}, nil
}

// toDataURI は画像を OpenAI 互換 API 用の data URI に変換します。
func toDataURI(img domain.Image) (string, error) {
	mimeType, err := detectImageMIME(img)
	if err != nil {
		return "", err
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data), nil
}

// parseToResponse は Gemini のレスポンスを解析して ImageResponse に変換します。
func parseToResponse(resp *gemini.Response, seed int64) (*domain.ImageResponse, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.RawResponse.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &domain.ImageResponse{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
					UsedSeed: seed,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	switch candidate.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
	default:
		return nil, fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}

	return nil, ErrNoImage
}
