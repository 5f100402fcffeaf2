package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// mockReader は remoteio.InputReader のテスト用モックなのだ。
type mockReader struct {
	objects map[string][]byte
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	data, ok := m.objects[uri]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", uri)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	prefix := strings.TrimSuffix(uri, "/") + "/"
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) && !strings.Contains(strings.TrimPrefix(k, prefix), "/") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn(k); err != nil {
			return err
		}
	}
	return nil
}

type mockHTTPClient struct {
	data    []byte
	err     error
	fetched []string
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.fetched = append(m.fetched, url)
	return m.data, m.err
}

// mockDoer は httpkit.Doer のテスト用モックで、常に 200 を返すのだ。
type mockDoer struct {
	body     []byte
	requests []*http.Request
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	return &http.Response{
		StatusCode:    http.StatusOK,
		Body:          io.NopCloser(bytes.NewReader(m.body)),
		ContentLength: int64(len(m.body)),
		Header:        make(http.Header),
		Request:       req,
	}, nil
}
