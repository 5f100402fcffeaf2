package synth

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/shouni/style-bench-kit/pkg/domain"
)

type mockSynthesizer struct {
	synthesizeFunc func(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error)
	requests       []domain.SynthesisRequest
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, req domain.SynthesisRequest) (*domain.ImageResponse, error) {
	m.requests = append(m.requests, req)
	return m.synthesizeFunc(ctx, req)
}

func encodedImage(w, h int, format string) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := new(bytes.Buffer)
	if format == "jpeg" {
		_ = jpeg.Encode(buf, img, nil)
	} else {
		_ = png.Encode(buf, img)
	}
	return buf.Bytes()
}
