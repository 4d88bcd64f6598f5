package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompatible_Chat(t *testing.T) {
	var gotBody struct {
		Model    string         `json:"model"`
		Messages []core.Message `json:"messages"`
	}
	var gotAuth, gotTitle, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotTitle = r.Header.Get("X-Title")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Hello"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:      srv.URL,
		APIKey:       "sk-test",
		Model:        "default-model",
		AuthHeader:   "Authorization",
		AuthPrefix:   "Bearer ",
		ExtraHeaders: map[string]string{"X-Title": core.RelayName},
	})

	history := []core.Message{
		{Role: core.RoleSystem, Content: "You are a helpful assistant inside Slack."},
		{Role: core.RoleUser, Content: "hi"},
	}
	msg, err := p.Chat(context.Background(), "gpt-3.5-turbo", history)
	require.NoError(t, err)

	assert.Equal(t, core.Message{Role: core.RoleAssistant, Content: "Hello"}, msg)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, core.RelayName, gotTitle)
	assert.Equal(t, "gpt-3.5-turbo", gotBody.Model)
	assert.Equal(t, history, gotBody.Messages)
}

func TestOpenAICompatible_DefaultModel(t *testing.T) {
	var model string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		model, _ = body["model"].(string)
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer srv.Close()

	_, err := NewOllama(srv.URL, "", "llama3").Chat(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "llama3", model)
}

func TestOpenAICompatible_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		is      error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"bad key"}`, wantErr: "http 401"},
		{name: "malformed", status: http.StatusOK, body: `{"choices":`, wantErr: "decode"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, is: core.ErrEmptyChoice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewCustomOpenAI(srv.URL, "k", "m").Chat(context.Background(), "", nil)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			} else {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestOpenAICompatible_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewOllama(url, "", "m").Chat(context.Background(), "", nil)
	assert.Error(t, err)
}
