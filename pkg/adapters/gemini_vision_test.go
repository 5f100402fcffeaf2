package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/oracle"
)

func TestGeminiVisionModel_Stream(t *testing.T) {
	ctx := context.Background()
	img := domain.Image{Name: "cat.png", Data: validPNG}

	t.Run("成功: 画像と質問が送られ、断片が順に届くのだ", func(t *testing.T) {
		streamer := &mockStreamer{chunks: []string{"I'd say ", "about 8"}}
		model, err := NewGeminiVisionModel(streamer, "gemini-2.5-flash", false)
		require.NoError(t, err)

		temp := float32(0.7)
		got, err := oracle.Collect(model.Stream(ctx, img, "rate it", oracle.GenerationOptions{MaxTokens: 50, Temperature: &temp}))

		require.NoError(t, err)
		assert.Equal(t, "I'd say about 8", got)
		assert.Equal(t, "gemini-2.5-flash", streamer.lastModel)
		require.Len(t, streamer.lastContents, 1)
		parts := streamer.lastContents[0].Parts
		require.Len(t, parts, 2)
		assert.NotNil(t, parts[0].InlineData)
		assert.Equal(t, "rate it", parts[1].Text)
		assert.Equal(t, int32(50), streamer.lastConfig.MaxOutputTokens)
		assert.Equal(t, &temp, streamer.lastConfig.Temperature)
	})

	t.Run("失敗: ストリーム途中のエラーが返るのだ", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		streamer := &mockStreamer{chunks: []string{"partial"}, err: boom}
		model, _ := NewGeminiVisionModel(streamer, "m", false)

		_, err := oracle.Collect(model.Stream(ctx, img, "q", oracle.GenerationOptions{}))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("失敗: 画像でないデータは送信前にエラーなのだ", func(t *testing.T) {
		streamer := &mockStreamer{}
		model, _ := NewGeminiVisionModel(streamer, "m", false)

		_, err := oracle.Collect(model.Stream(ctx, domain.Image{Name: "x", Data: []byte("text")}, "q", oracle.GenerationOptions{}))
		assert.ErrorIs(t, err, ErrNotImage)
		assert.Nil(t, streamer.lastContents, "API should not be called")
	})

	t.Run("nilチェック", func(t *testing.T) {
		_, err := NewGeminiVisionModel(nil, "m", false)
		assert.Error(t, err)
	})
}

func TestGeminiVisionModel_StreamCompressed(t *testing.T) {
	streamer := &mockStreamer{chunks: []string{"7"}}
	model, _ := NewGeminiVisionModel(streamer, "m", true)

	// デコードできない PNG は圧縮されずにそのまま送られるのだ
	_, err := oracle.Collect(model.Stream(context.Background(), domain.Image{Name: "a.png", Data: validPNG}, "q", oracle.GenerationOptions{}))
	require.NoError(t, err)

	var blob *genai.Blob
	for _, p := range streamer.lastContents[0].Parts {
		if p.InlineData != nil {
			blob = p.InlineData
		}
	}
	require.NotNil(t, blob)
	assert.Equal(t, validPNG, blob.Data)
}
