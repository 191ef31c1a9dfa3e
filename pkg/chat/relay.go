package chat

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/jobmatch/pkg/faults"
	"github.com/artem13815/jobmatch/pkg/llm"
)

// Message is one turn of a caller-owned conversation. The service keeps no
// session state: callers resend history when they want multi-turn context.
type Message struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Placeholder is the stable user-visible reply text when the provider fails.
// A failed turn degrades to this, it never corrupts the session.
const Placeholder = "The assistant is temporarily unavailable. Please try again in a moment."

const systemPrompt = "You are a career assistant. You help with job matching, " +
	"skill gaps, resume improvements and course selection. Answer concisely."

// Relay forwards prompts to the configured provider. It owns conversation
// assembly, the per-call deadline, failure classification and the optional
// bounded retry of transport failures.
type Relay struct {
	provider    llm.Provider
	log         *zap.Logger
	timeout     time.Duration
	maxAttempts int
	historyMax  int
}

func NewRelay(provider llm.Provider, log *zap.Logger, timeout time.Duration, maxAttempts, historyMax int) *Relay {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Relay{
		provider:    provider,
		log:         log,
		timeout:     timeout,
		maxAttempts: maxAttempts,
		historyMax:  historyMax,
	}
}

// Send relays one prompt with optional prior turns and returns the assistant
// reply. An empty prompt fails with EmptyPrompt before any provider call.
func (r *Relay) Send(ctx context.Context, prompt string, history []Message) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", faults.New(faults.EmptyPrompt, "prompt must not be empty")
	}

	messages := r.assemble(prompt, history)

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		reply, err := r.callOnce(ctx, messages)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		kind := faults.KindOf(err)
		r.log.Warn("provider call failed",
			zap.String("kind", string(kind)),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		// only transport failures are worth another attempt; the call is
		// read-only for the provider, so a retry has no side effects
		if kind != faults.TransportError || attempt == r.maxAttempts {
			return "", err
		}
		if err := sleepBackoff(ctx, attempt); err != nil {
			return "", faults.Wrap(faults.TransportError, err, "provider unreachable")
		}
	}
	return "", lastErr
}

func (r *Relay) callOnce(ctx context.Context, messages []llm.Message) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.provider.Chat(ctx, messages)
}

// assemble serializes the full turn history into provider messages so
// conversational context survives across stateless calls. Unknown roles
// degrade to user turns; empty turns are dropped.
func (r *Relay) assemble(prompt string, history []Message) []llm.Message {
	if r.historyMax > 0 && len(history) > r.historyMax {
		history = history[len(history)-r.historyMax:]
	}
	out := make([]llm.Message, 0, len(history)+2)
	out = append(out, llm.Message{Role: llm.RoleSystem, Text: systemPrompt})
	for _, m := range history {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		role := llm.RoleUser
		if m.Role == llm.RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Text: text})
	}
	return append(out, llm.Message{Role: llm.RoleUser, Text: prompt})
}

// sleepBackoff waits an exponentially growing, jittered interval before the
// next attempt, bailing out early when ctx is done.
func sleepBackoff(ctx context.Context, attempt int) error {
	const (
		base = 500 * time.Millisecond
		max  = 5 * time.Second
	)
	sleep := base * time.Duration(1<<(attempt-1))
	if sleep > max {
		sleep = max
	}
	sleep += time.Duration(rand.Intn(200)) * time.Millisecond

	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
