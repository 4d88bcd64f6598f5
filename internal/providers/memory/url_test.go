package memory

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestURLLoader_Load(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "plain text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				fmt.Fprint(w, "Phase 1 launches Monday.\n")
			},
			want: "Phase 1 launches Monday.\n",
		},
		{
			name: "no content type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header()["Content-Type"] = nil
				fmt.Fprint(w, "raw")
			},
			want: "raw",
		},
		{
			name: "html is flattened",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				fmt.Fprint(w, `<html><body><h1>Launch</h1><p>Phase 1 launches Monday.</p></body></html>`)
			},
			want: "Launch",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			want: "",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, "oops")
			},
			want: "",
		},
		{
			name: "binary body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
			},
			want: "",
		},
		{
			name: "invalid utf-8",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.Write([]byte{0xff, 0xfe, 0xfd})
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			got := NewURLLoader(srv.URL).Load(context.Background())
			if tt.name == "html is flattened" {
				assert.Contains(t, got, tt.want)
				assert.Contains(t, got, "Phase 1 launches Monday.")
				assert.NotContains(t, got, "<p>")
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestURLLoader_SendsUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	NewURLLoader(srv.URL).Load(context.Background())
	assert.Equal(t, core.RelayUserAgent, ua)
}

func TestURLLoader_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	l := NewURLLoader(url)
	assert.Equal(t, "", l.Load(context.Background()))
	assert.Equal(t, url, l.Source())
}

func TestURLLoader_InvalidURL(t *testing.T) {
	assert.Equal(t, "", NewURLLoader("://bad").Load(context.Background()))
}

func TestURLLoader_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, "late")
	}))
	defer srv.Close()

	l := NewURLLoaderWithTimeout(srv.URL, 20*time.Millisecond)
	assert.Equal(t, "", l.Load(context.Background()))
}

func TestURLLoader_RefetchesEveryCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, "version %d", calls)
	}))
	defer srv.Close()

	l := NewURLLoader(srv.URL)
	assert.Equal(t, "version 1", l.Load(context.Background()))
	assert.Equal(t, "version 2", l.Load(context.Background()))
}

func TestURLLoader_OversizedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "ascii is cut at the limit",
			body: strings.Repeat("a", maxMemorySize) + "tail",
			want: strings.Repeat("a", maxMemorySize),
		},
		{
			name: "rune on the boundary is dropped",
			body: strings.Repeat("a", maxMemorySize-1) + "é" + "tail",
			want: strings.Repeat("a", maxMemorySize-1),
		},
		{
			name: "exactly at the limit",
			body: strings.Repeat("a", maxMemorySize-2) + "é",
			want: strings.Repeat("a", maxMemorySize-2) + "é",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			got := NewURLLoader(srv.URL).Load(context.Background())
			assert.Equal(t, len(tt.want), len(got))
			assert.True(t, got == tt.want)
		})
	}
}

func TestTrimPartialRune(t *testing.T) {
	euro := []byte("€") // 3 bytes

	assert.Equal(t, []byte("ab"), trimPartialRune(append([]byte("ab"), euro[:1]...)))
	assert.Equal(t, []byte("ab"), trimPartialRune(append([]byte("ab"), euro[:2]...)))
	assert.Equal(t, append([]byte("ab"), euro...), trimPartialRune(append([]byte("ab"), euro...)))
	assert.Equal(t, []byte("abc"), trimPartialRune([]byte("abc")))
	assert.Empty(t, trimPartialRune(nil))
}
