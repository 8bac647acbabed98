package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/agri-advisor/src/lang"
)

// Generator is the part of a go-agent Agent the gemini provider needs.
type Generator interface {
	Generate(ctx context.Context, sessionID, prompt string) (string, error)
}

type sessionKey struct{}

// WithSession tags ctx with the conversation session so agent-backed providers
// keep one memory per session.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionFrom returns the session tagged by WithSession, or "default".
func SessionFrom(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok && id != "" {
		return id
	}
	return "default"
}

// Agent translates by prompting an LLM agent.
type Agent struct {
	gen Generator
}

// NewAgent wraps a generator, usually a *agent.Agent built by BuildAgent.
func NewAgent(gen Generator) *Agent { return &Agent{gen: gen} }

func (a *Agent) Translate(ctx context.Context, text, target string) (string, error) {
	if a.gen == nil {
		return "", unavailable(ProviderGemini, fmt.Errorf("agent not configured"))
	}
	// Blank cells have nothing to translate and the model answers them with nothing.
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	name := target
	if l, ok := lang.ByCode(target); ok {
		name = l.Name
	}
	prompt := fmt.Sprintf("Target language: %s (%s)\nText:\n%s", name, target, text)
	out, err := a.gen.Generate(ctx, SessionFrom(ctx), prompt)
	if err != nil {
		return "", unavailable(ProviderGemini, err)
	}
	out = strings.TrimSpace(strings.Trim(strings.TrimSpace(out), "`"))
	if out == "" {
		return "", unavailable(ProviderGemini, fmt.Errorf("empty response"))
	}
	return out, nil
}
