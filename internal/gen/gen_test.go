// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestQwenBackend_Success(t *testing.T) {
	var gotReq chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"a fine reviewer"}}]}`)
	}))
	defer ts.Close()

	b := &QwenBackend{APIKey: "sk-test", Model: "qwen-plus", BaseURL: ts.URL, Client: ts.Client()}
	out, err := b.Generate(context.Background(), "you are a chair", "explain the fit")
	require.NoError(t, err)

	assert.Equal(t, "a fine reviewer", out)
	assert.Equal(t, "qwen-plus", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "you are a chair", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Zero(t, gotReq.Temperature)
}

func TestQwenBackend_BadRequestIsValidation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad prompt", http.StatusBadRequest)
	}))
	defer ts.Close()

	b := &QwenBackend{Model: "qwen-plus", BaseURL: ts.URL, Client: ts.Client()}
	_, err := b.Generate(context.Background(), "s", "u")
	require.Error(t, err)

	assert.True(t, IsValidation(err))
	assert.False(t, IsTransient(err))
}

func TestQwenBackend_ServerErrorIsTransient(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		b := &QwenBackend{Model: "qwen-plus", BaseURL: ts.URL, Client: ts.Client()}
		_, err := b.Generate(context.Background(), "s", "u")
		ts.Close()
		require.Error(t, err, status)

		assert.True(t, IsTransient(err), "status %d", status)
		assert.False(t, IsValidation(err), "status %d", status)
	}
}

func TestQwenBackend_ConnectionErrorIsTransient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // refuse connections

	b := &QwenBackend{Model: "qwen-plus", BaseURL: ts.URL, Client: http.DefaultClient}
	_, err := b.Generate(context.Background(), "s", "u")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestQwenBackend_EmptyContentIsTransient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer ts.Close()

	b := &QwenBackend{Model: "qwen-plus", BaseURL: ts.URL, Client: ts.Client()}
	_, err := b.Generate(context.Background(), "s", "u")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestClassifyGenAI(t *testing.T) {
	bad := genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}
	assert.True(t, IsValidation(classifyGenAI(bad)))

	quota := genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}
	assert.True(t, IsTransient(classifyGenAI(quota)))

	internal := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	assert.True(t, IsTransient(classifyGenAI(internal)))

	assert.True(t, IsTransient(classifyGenAI(fmt.Errorf("connection reset"))))
}

func TestErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	te := &TransientError{Err: inner}
	assert.ErrorIs(t, te, inner)

	ve := &ValidationError{Err: inner}
	assert.ErrorIs(t, ve, inner)
}
