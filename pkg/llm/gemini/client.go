package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/artem13815/jobmatch/pkg/faults"
	"github.com/artem13815/jobmatch/pkg/llm"
)

const defaultModel = "gemini-2.5-flash"

// Client adapts the Google GenAI SDK to the llm.Provider port.
type Client struct {
	client    *genai.Client
	modelName string
}

// New creates a client for the Gemini API backend.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Client{client: client, modelName: model}, nil
}

func (c *Client) Model() string { return c.modelName }

// Chat sends the conversation to Gemini and returns the first textual
// response. System messages become the system instruction; assistant turns
// map to the model role.
func (c *Client) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	var system *genai.Content
	var contents []*genai.Content
	for _, m := range messages {
		part := &genai.Part{Text: m.Text}
		switch m.Role {
		case llm.RoleSystem:
			system = &genai.Content{Parts: []*genai.Part{part}}
		case llm.RoleAssistant:
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{part}})
		default:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{part}})
		}
	}

	var config *genai.GenerateContentConfig
	if system != nil {
		config = &genai.GenerateContentConfig{SystemInstruction: system}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		return "", classify(err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", faults.New(faults.ProtocolError, "gemini api returned empty response")
	}
	return output, nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return faults.Wrap(faults.TransportError, err, "provider unreachable")
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return faults.Wrap(faults.ProviderError, err, "provider returned http %d", apiErr.Code)
	}
	return faults.Wrap(faults.TransportError, err, "provider call failed")
}
