package adapters

import (
	"context"
	"io"
	"iter"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// validPNG は PNG シグネチャを含む最小限のバイナリなのだ。
var validPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90w\x53\xde")

// mockStreamer は contentStreamer のテスト用モックなのだ。
type mockStreamer struct {
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	chunks       []string
	err          error
}

func (m *mockStreamer) GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, c := range m.chunks {
			resp := &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: c}}}}},
			}
			if !yield(resp, nil) {
				return
			}
		}
		if m.err != nil {
			yield(nil, m.err)
		}
	}
}

// mockContentGenerator は ContentGenerator のテスト用モックなのだ。
type mockContentGenerator struct {
	generateFunc func(model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
	ctxFunc      func(ctx context.Context) (*gemini.Response, error)
}

func (m *mockContentGenerator) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	if m.ctxFunc != nil {
		return m.ctxFunc(ctx)
	}
	if m.generateFunc != nil {
		return m.generateFunc(model, parts, opts)
	}
	return nil, nil
}

// mockImagen は imageGenerator のテスト用モックなのだ。
type mockImagen struct {
	lastPrompt string
	lastConfig *genai.GenerateImagesConfig
	resp       *genai.GenerateImagesResponse
	err        error
}

func (m *mockImagen) GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.lastPrompt = prompt
	m.lastConfig = config
	return m.resp, m.err
}

// mockChatStream は chatChunkReader のテスト用モックなのだ。
type mockChatStream struct {
	deltas []string
	err    error
	closed bool
}

func (m *mockChatStream) Recv() (openai.ChatCompletionStreamResponse, error) {
	if len(m.deltas) == 0 {
		if m.err != nil {
			return openai.ChatCompletionStreamResponse{}, m.err
		}
		return openai.ChatCompletionStreamResponse{}, io.EOF
	}
	d := m.deltas[0]
	m.deltas = m.deltas[1:]
	return openai.ChatCompletionStreamResponse{
		Choices: []openai.ChatCompletionStreamChoice{{Delta: openai.ChatCompletionStreamChoiceDelta{Content: d}}},
	}, nil
}

func (m *mockChatStream) Close() error {
	m.closed = true
	return nil
}

// mockImageCreator は imageCreator のテスト用モックなのだ。
type mockImageCreator struct {
	lastRequest openai.ImageRequest
	resp        openai.ImageResponse
	err         error
}

func (m *mockImageCreator) CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error) {
	m.lastRequest = request
	return m.resp, m.err
}
