package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Stream is an incrementally delivered text response. Recv blocks until the
// next chunk arrives and returns io.EOF once the server closes the stream.
// Chunks are returned strictly in arrival order; their concatenation is the
// full answer.
type Stream interface {
	Recv() (string, error)
	Close()
}

// StreamChatMemoryRequest opens the assistant stream that carries
// conversation memory. MessageID is the chat session id.
type StreamChatMemoryRequest struct {
	Query     string
	MessageID string
	ProblemID int64
}

// StreamChatWithMemory opens a chunked answer stream for a query within a
// chat session.
func (c *Client) StreamChatWithMemory(ctx context.Context, request *StreamChatMemoryRequest) (Stream, error) {
	params := url.Values{}
	params.Set("query", request.Query)
	params.Set("messageId", request.MessageID)
	if request.ProblemID != 0 {
		params.Set("problemId", strconv.FormatInt(request.ProblemID, 10))
	}
	return c.openStream(ctx, "/chat/stream/memory", params)
}

// StreamChatSimple opens a one-shot chunked answer stream with no
// conversation memory.
func (c *Client) StreamChatSimple(ctx context.Context, query string) (Stream, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.openStream(ctx, "/chat/stream/simple", params)
}

// openStream issues the GET and hands the response body to an httpStream.
// The returned stream owns both the request's cancellation and the body; a
// single Close releases everything.
func (c *Client) openStream(ctx context.Context, path string, params url.Values) (Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path, params), nil)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "creating request")
	}
	if token := c.credentials.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.streamClient.Do(request)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "executing request")
	}
	if response.StatusCode == http.StatusUnauthorized {
		response.Body.Close()
		cancel()
		c.credentials.Clear()
		return nil, ErrUnauthorized
	}
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		cancel()
		return nil, errors.Errorf("unexpected status %d", response.StatusCode)
	}
	return &httpStream{
		body:   response.Body,
		cancel: cancel,
		buffer: make([]byte, 4096),
	}, nil
}

// httpStream reads a chunked response body. Decoding is stateful: a
// multi-byte rune split across two reads is held back until its remaining
// bytes arrive, so chunk boundaries never corrupt text.
type httpStream struct {
	body   io.ReadCloser
	cancel context.CancelFunc
	buffer []byte
	// Trailing bytes of an incomplete rune from the previous read.
	partial []byte

	closeOnce sync.Once
}

// Recv returns the next decoded chunk.
func (s *httpStream) Recv() (string, error) {
	for {
		n, err := s.body.Read(s.buffer)
		if n > 0 {
			chunk := append(s.partial, s.buffer[:n]...)
			complete, partial := splitCompleteRunes(chunk)
			s.partial = partial
			if len(complete) > 0 {
				// A read error alongside data resurfaces on the next call.
				return string(complete), nil
			}
		}
		if err != nil {
			if len(s.partial) > 0 && err == io.EOF {
				// The server closed mid-rune; emit the raw tail rather than
				// dropping bytes.
				chunk := string(s.partial)
				s.partial = nil
				return chunk, nil
			}
			return "", err
		}
	}
}

// Close aborts the request and releases the body. Idempotent.
func (s *httpStream) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.body.Close()
	})
}

// splitCompleteRunes cuts b before a trailing incomplete UTF-8 sequence.
func splitCompleteRunes(b []byte) (complete, partial []byte) {
	for i := len(b) - 1; i >= 0 && len(b)-i < utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i], b[i:]
			}
			break
		}
	}
	return b, nil
}
