package translate

import (
	"context"
	"fmt"
)

// DefaultUTCPTool is the tool called when none is configured.
const DefaultUTCPTool = "translate.text"

// ToolCaller is the part of a go-utcp client the utcp provider needs.
type ToolCaller interface {
	CallTool(ctx context.Context, toolName string, args map[string]any) (any, error)
}

// UTCP translates by calling a remote tool with {text, target}.
type UTCP struct {
	client ToolCaller
	tool   string
}

// NewUTCP binds a client to a tool name.
func NewUTCP(client ToolCaller, tool string) *UTCP {
	if tool == "" {
		tool = DefaultUTCPTool
	}
	return &UTCP{client: client, tool: tool}
}

func (u *UTCP) Translate(ctx context.Context, text, target string) (string, error) {
	if u.client == nil {
		return "", unavailable(ProviderUTCP, fmt.Errorf("client not configured"))
	}
	res, err := u.client.CallTool(ctx, u.tool, map[string]any{
		"text":   text,
		"target": target,
	})
	if err != nil {
		return "", unavailable(ProviderUTCP, err)
	}
	out, ok := toolText(res)
	if !ok {
		return "", unavailable(ProviderUTCP, fmt.Errorf("unexpected result %T from %s", res, u.tool))
	}
	return out, nil
}

func toolText(res any) (string, bool) {
	switch v := res.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case map[string]any:
		for _, k := range []string{"translation", "translated_text", "text", "result"} {
			if s, ok := v[k].(string); ok {
				return s, true
			}
		}
	}
	return "", false
}
