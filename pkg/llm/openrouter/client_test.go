package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobmatch/pkg/faults"
	"github.com/artem13815/jobmatch/pkg/llm"
)

func newTestClient(baseURL string) *Client {
	return New("test-key", baseURL, "test-model", "", "")
}

func oneTurn() []llm.Message {
	return []llm.Message{{Role: llm.RoleUser, Text: "hello"}}
}

func TestChatOpenAIShape(t *testing.T) {
	var gotBody chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`))
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Text: "be brief"},
		{Role: llm.RoleUser, Text: "earlier question"},
		{Role: llm.RoleAssistant, Text: "earlier answer"},
		{Role: llm.RoleUser, Text: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	// the full turn history is serialized, not just the latest prompt
	require.Len(t, gotBody.Messages, 4)
	assert.Equal(t, "assistant", gotBody.Messages[2].Role)
}

func TestChatCandidateFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"hello"}`))
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Chat(context.Background(), oneTurn())
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
}

func TestChatUnknownShapeReturnsRawPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weird":{"nested":1}}`))
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Chat(context.Background(), oneTurn())
	require.NoError(t, err)
	assert.Equal(t, `{"weird":{"nested":1}}`, reply)
}

func TestChatProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Chat(context.Background(), oneTurn())
	require.Error(t, err)
	assert.Equal(t, faults.ProviderError, faults.KindOf(err))
	assert.Contains(t, err.Error(), "429")
}

func TestChatProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Chat(context.Background(), oneTurn())
	require.Error(t, err)
	assert.Equal(t, faults.ProtocolError, faults.KindOf(err))
}

func TestChatTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := newTestClient(srv.URL).Chat(context.Background(), oneTurn())
	require.Error(t, err)
	assert.Equal(t, faults.TransportError, faults.KindOf(err))
}

func TestChatTimeoutIsTransportError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := newTestClient(srv.URL).Chat(ctx, oneTurn())
	require.Error(t, err)
	assert.Equal(t, faults.TransportError, faults.KindOf(err))
	// bounded by the context deadline, not the server's sleep
	assert.Less(t, time.Since(start), 150*time.Millisecond)
	assert.EqualValues(t, 1, calls.Load())
}

func TestChatMissingAPIKey(t *testing.T) {
	c := New("", "http://127.0.0.1:0", "m", "", "")
	_, err := c.Chat(context.Background(), oneTurn())
	require.Error(t, err)
	assert.Equal(t, faults.ProviderError, faults.KindOf(err))
}

func TestResolveReplyCandidateOrder(t *testing.T) {
	// "reply" wins over "text" when both are present
	reply, err := ResolveReply([]byte(`{"text":"second","reply":"first"}`))
	require.NoError(t, err)
	assert.Equal(t, "first", reply)

	// null candidates are skipped
	reply, err = ResolveReply([]byte(`{"reply":null,"text":"hello"}`))
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
}
