package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/jobmatch/pkg/faults"
	"github.com/artem13815/jobmatch/pkg/llm"
)

// Client is a minimal OpenRouter (OpenAI-compatible) chat completions client.
type Client struct {
	APIKey   string
	BaseURL  string
	ModelID  string
	AppTitle string
	Referer  string
	httpDo   *http.Client
}

func New(apiKey, baseURL, model, appTitle, referer string) *Client {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &Client{
		APIKey:   apiKey,
		BaseURL:  baseURL,
		ModelID:  model,
		AppTitle: appTitle,
		Referer:  referer,
		httpDo: &http.Client{
			// hard ceiling; per-request deadlines come from ctx
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) Model() string { return c.ModelID }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// replyCandidates is the ordered list of top-level fields a provider reply may
// live under when the response is not OpenAI-shaped. First present, non-null
// candidate wins; a new provider shape means adding a key here, nothing else.
var replyCandidates = []string{"reply", "text", "message", "content", "response", "answer"}

// Chat sends the conversation and returns the assistant reply. Failures are
// classified: unreachable provider → TransportError, non-2xx → ProviderError,
// unparseable body → ProtocolError.
func (c *Client) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	if c.APIKey == "" {
		return "", faults.New(faults.ProviderError, "openrouter api key is empty")
	}
	model := c.ModelID
	if model == "" {
		model = "qwen/qwen2.5-32b-instruct"
	}
	reqBody := chatCompletionsRequest{
		Model:       model,
		Messages:    make([]message, 0, len(messages)),
		Temperature: 0.2,
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, message{Role: m.Role, Content: m.Text})
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", faults.Wrap(faults.ProtocolError, err, "encode chat request")
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", faults.Wrap(faults.TransportError, err, "build provider request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.AppTitle != "" {
		httpReq.Header.Set("X-Title", c.AppTitle)
	}

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", faults.Wrap(faults.TransportError, err, "provider unreachable")
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		return "", faults.Wrap(faults.TransportError, err, "read provider response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", faults.New(faults.ProviderError, "provider returned http %d: %s", resp.StatusCode, snippet(body.Bytes(), 500))
	}
	return ResolveReply(body.Bytes())
}

// ResolveReply extracts the assistant text from a provider response body.
// OpenAI-shaped bodies win; otherwise the candidate fields are tried in
// order; as a last resort the raw payload is returned serialized, so
// information is never silently dropped.
func ResolveReply(body []byte) (string, error) {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(body, &generic); err != nil {
		return "", faults.Wrap(faults.ProtocolError, err, "provider response is not valid JSON")
	}

	if raw, ok := generic["choices"]; ok {
		var choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		}
		if err := json.Unmarshal(raw, &choices); err == nil && len(choices) > 0 {
			if text := strings.TrimSpace(choices[0].Message.Content); text != "" {
				return text, nil
			}
		}
	}

	for _, key := range replyCandidates {
		raw, ok := generic[key]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	// unknown shape: hand the payload back verbatim
	return string(bytes.TrimSpace(body)), nil
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
