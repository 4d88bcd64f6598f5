package memory

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/pkg/log"
)

const (
	maxMemorySize       = 1 << 20 // 1MB limit
	defaultFetchTimeout = 15 * time.Second
)

// URLLoader fetches the memory block with a plain GET on every call.
type URLLoader struct {
	url    string
	client *http.Client
}

func NewURLLoader(url string) *URLLoader {
	return NewURLLoaderWithTimeout(url, defaultFetchTimeout)
}

func NewURLLoaderWithTimeout(url string, timeout time.Duration) *URLLoader {
	return &URLLoader{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (l *URLLoader) Source() string {
	return l.url
}

// Load returns "" on any failure.
func (l *URLLoader) Load(ctx context.Context) string {
	body, err := l.fetch(ctx)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("url", l.url).Msg("failed to fetch memory")
		return ""
	}
	return body
}

func (l *URLLoader) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", core.RelayUserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	mediaType := "text/plain"
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err = mime.ParseMediaType(ct); err != nil {
			return "", fmt.Errorf("bad content type %q: %w", ct, err)
		}
	}
	if !strings.HasPrefix(mediaType, "text/") {
		return "", fmt.Errorf("non-text content type %q", mediaType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMemorySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) > maxMemorySize {
		log.FromCtx(ctx).Warn().
			Str("url", l.url).
			Int("limit", maxMemorySize).
			Msg("memory body exceeds size limit, truncating")
		data = trimPartialRune(data[:maxMemorySize])
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("body is not valid UTF-8")
	}

	if mediaType == "text/html" {
		text, err := html2text.FromString(string(data), html2text.Options{
			OmitLinks:    true,
			PrettyTables: true,
		})
		if err != nil {
			return "", fmt.Errorf("failed to convert html: %w", err)
		}
		return text, nil
	}

	return string(data), nil
}

// trimPartialRune drops an incomplete UTF-8 sequence left at the end of a
// truncated buffer.
func trimPartialRune(data []byte) []byte {
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				return data[:i]
			}
			break
		}
	}
	return data
}
