// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
)

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// NewStringResponse builds an *http.Response with the given status and body.
func NewStringResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// ChunkReader yields the wrapped data in fixed-size chunks, so stream
// decoding can be exercised against record boundaries landing anywhere.
type ChunkReader struct {
	data  []byte
	size  int
	chunk int
}

func NewChunkReader(data []byte, size int) *ChunkReader {
	if size <= 0 {
		size = 1
	}
	return &ChunkReader{data: data, size: size}
}

func (c *ChunkReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}

	n := c.size
	if n > len(c.data) {
		n = len(c.data)
	}
	if n > len(p) {
		n = len(p)
	}

	copy(p, c.data[:n])
	c.data = c.data[n:]
	c.chunk++
	return n, nil
}

// FWriter always fails on Write.
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter forwards a fixed number of writes and fails afterwards.
type LimitedWriter struct {
	allowed int
	used    int
	w       io.Writer
}

func NewLimitedWriter(allowed, used int, w io.Writer) LimitedWriter {
	return LimitedWriter{allowed: allowed, used: used, w: w}
}

func (l *LimitedWriter) Write(p []byte) (int, error) {
	if l.used >= l.allowed {
		return 0, errors.New("write limit reached")
	}
	l.used++
	return l.w.Write(p)
}

// FReader always fails on Read, simulating a mid-stream network error.
type FReader struct{}

func (f *FReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

// BrokenBody reads the prefix successfully and then fails, simulating a
// connection dropped mid-stream.
type BrokenBody struct {
	prefix *bytes.Reader
}

func NewBrokenBody(prefix []byte) *BrokenBody {
	return &BrokenBody{prefix: bytes.NewReader(prefix)}
}

func (b *BrokenBody) Read(p []byte) (int, error) {
	n, err := b.prefix.Read(p)
	if err == io.EOF {
		return 0, errors.New("connection reset")
	}
	return n, err
}

func (b *BrokenBody) Close() error { return nil }
