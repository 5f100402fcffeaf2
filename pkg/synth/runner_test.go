package synth

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/style-bench-kit/pkg/domain"
	"github.com/shouni/style-bench-kit/pkg/promptgen"
)

func writePrompts(t *testing.T, prompts []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPromptFile)
	require.NoError(t, promptgen.SavePrompts(path, prompts))
	return path
}

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()
	pngData := encodedImage(4, 4, "png")

	t.Run("K件のプロンプトから image_1..image_K を順に作るのだ", func(t *testing.T) {
		mock := &mockSynthesizer{synthesizeFunc: func(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error) {
			return &domain.ImageResponse{Data: pngData, MimeType: "image/png"}, nil
		}}
		r, err := NewRunner(mock, Options{})
		require.NoError(t, err)
		out := filepath.Join(t.TempDir(), "nested", DefaultOutputFolder)

		saved, err := r.Run(ctx, writePrompts(t, []string{"first", "second", "third"}), out)
		require.NoError(t, err)

		assert.Equal(t, []string{
			filepath.Join(out, "image_1.png"),
			filepath.Join(out, "image_2.png"),
			filepath.Join(out, "image_3.png"),
		}, saved)
		for _, p := range saved {
			got, err := os.ReadFile(p)
			require.NoError(t, err)
			assert.Equal(t, pngData, got)
		}

		require.Len(t, mock.requests, 3)
		assert.Equal(t, "first", mock.requests[0].Prompt)
		assert.Equal(t, "third", mock.requests[2].Prompt)
		assert.Equal(t, 8, mock.requests[0].Steps)
		assert.Equal(t, 1.0, mock.requests[0].GuidanceScale)
		assert.Empty(t, mock.requests[0].NegativePrompt)
		assert.Empty(t, mock.requests[0].AspectRatio)
		assert.Nil(t, mock.requests[0].Seed)
	})

	t.Run("共通オプションを全てのリクエストに付けるのだ", func(t *testing.T) {
		mock := &mockSynthesizer{synthesizeFunc: func(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error) {
			return &domain.ImageResponse{Data: pngData, MimeType: "image/png"}, nil
		}}
		var seed int64 = 7
		r, err := NewRunner(mock, Options{NegativePrompt: "blurry", AspectRatio: "16:9", Seed: &seed})
		require.NoError(t, err)

		_, err = r.Run(ctx, writePrompts(t, []string{"first", "second"}), t.TempDir())
		require.NoError(t, err)

		require.Len(t, mock.requests, 2)
		for _, req := range mock.requests {
			assert.Equal(t, "blurry", req.NegativePrompt)
			assert.Equal(t, "16:9", req.AspectRatio)
			require.NotNil(t, req.Seed)
			assert.Equal(t, int64(7), *req.Seed)
		}
	})

	t.Run("空の配列なら画像は作らずエラーもないのだ", func(t *testing.T) {
		mock := &mockSynthesizer{}
		r, _ := NewRunner(mock, Options{})
		out := t.TempDir()

		saved, err := r.Run(ctx, writePrompts(t, []string{}), out)
		require.NoError(t, err)
		assert.Empty(t, saved)

		entries, _ := os.ReadDir(out)
		assert.Empty(t, entries)
	})

	t.Run("JPEG で返ってきても PNG として保存するのだ", func(t *testing.T) {
		mock := &mockSynthesizer{synthesizeFunc: func(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error) {
			return &domain.ImageResponse{Data: encodedImage(8, 6, "jpeg"), MimeType: "image/jpeg"}, nil
		}}
		r, _ := NewRunner(mock, Options{})
		out := t.TempDir()

		saved, err := r.Run(ctx, writePrompts(t, []string{"a"}), out)
		require.NoError(t, err)

		f, err := os.Open(saved[0])
		require.NoError(t, err)
		defer f.Close()
		cfg, format, err := image.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 8, cfg.Width)
	})

	t.Run("最初の失敗で中断し、保存済みの画像は残るのだ", func(t *testing.T) {
		mock := &mockSynthesizer{synthesizeFunc: func(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error) {
			if req.Prompt == "boom" {
				return nil, errors.New("quota exceeded")
			}
			return &domain.ImageResponse{Data: pngData}, nil
		}}
		r, _ := NewRunner(mock, Options{})
		out := t.TempDir()

		saved, err := r.Run(ctx, writePrompts(t, []string{"ok", "boom", "never"}), out)
		require.Error(t, err)

		assert.Len(t, mock.requests, 2)
		assert.Equal(t, []string{filepath.Join(out, "image_1.png")}, saved)
		assert.FileExists(t, filepath.Join(out, "image_1.png"))
		assert.NoFileExists(t, filepath.Join(out, "image_2.png"))
	})

	t.Run("プロンプトファイルがなければエラーなのだ", func(t *testing.T) {
		r, _ := NewRunner(&mockSynthesizer{}, Options{})
		_, err := r.Run(ctx, filepath.Join(t.TempDir(), "missing.json"), t.TempDir())
		assert.Error(t, err)
	})
}

func TestNewRunner(t *testing.T) {
	_, err := NewRunner(nil, Options{})
	assert.Error(t, err)
}
