package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGoogleTranslate(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"client": q.Get("client"),
			"tl":     q.Get("tl"),
			"dt":     q.Get("dt"),
			"q":      q.Get("q"),
		}
		_, _ = w.Write([]byte(`[[["नमस्ते ","Hello ",null,null,10],["दुनिया","world",null,null,10]],null,"en"]`))
	}))
	defer srv.Close()

	g := NewGoogle(srv.URL, time.Second)
	out, err := g.Translate(context.Background(), "Hello world", "hi")
	require.NoError(t, err)
	assert.Equal(t, "नमस्ते दुनिया", out)
	assert.Equal(t, map[string]string{"client": "gtx", "tl": "hi", "dt": "t", "q": "Hello world"}, gotQuery)
}

func TestGoogleFailuresAreUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status", func(w http.ResponseWriter, r *http.Request) { http.Error(w, "quota", http.StatusTooManyRequests) }},
		{"garbage", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html>")) }},
		{"empty array", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("[]")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			_, err := NewGoogle(srv.URL, time.Second).Translate(context.Background(), "x", "hi")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTranslationUnavailable), "got %v", err)
		})
	}
}

func TestGoogleUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	_, err := NewGoogle(url, time.Second).Translate(context.Background(), "x", "hi")
	assert.ErrorIs(t, err, ErrTranslationUnavailable)
}

func TestNewGoogleDefaults(t *testing.T) {
	g := NewGoogle("", 0)
	assert.Equal(t, DefaultGoogleURL, g.BaseURL)
	assert.Equal(t, 15*time.Second, g.Client.Timeout)
}

type fakeGenerator struct {
	session string
	prompt  string
	reply   string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, sessionID, prompt string) (string, error) {
	f.session, f.prompt = sessionID, prompt
	return f.reply, f.err
}

func TestAgentTranslate(t *testing.T) {
	gen := &fakeGenerator{reply: "  `गेहूं`\n"}
	ctx := WithSession(context.Background(), "s-1")
	out, err := NewAgent(gen).Translate(ctx, "Wheat", "hi")
	require.NoError(t, err)
	assert.Equal(t, "गेहूं", out)
	assert.Equal(t, "s-1", gen.session)
	assert.Contains(t, gen.prompt, "Hindi (hi)")
	assert.Contains(t, gen.prompt, "Wheat")
}

func TestAgentFailures(t *testing.T) {
	_, err := NewAgent(&fakeGenerator{err: errors.New("quota")}).Translate(context.Background(), "x", "hi")
	assert.ErrorIs(t, err, ErrTranslationUnavailable)

	_, err = NewAgent(&fakeGenerator{reply: "   "}).Translate(context.Background(), "x", "hi")
	assert.ErrorIs(t, err, ErrTranslationUnavailable)

	_, err = NewAgent(nil).Translate(context.Background(), "x", "hi")
	assert.ErrorIs(t, err, ErrTranslationUnavailable)
}

func TestAgentPassesBlankTextThrough(t *testing.T) {
	gen := &fakeGenerator{reply: "should not be used"}
	for _, text := range []string{"", "  "} {
		out, err := NewAgent(gen).Translate(context.Background(), text, "hi")
		require.NoError(t, err)
		assert.Equal(t, text, out)
	}
	assert.Empty(t, gen.prompt, "model not prompted for blank text")
}

func TestSessionFromDefault(t *testing.T) {
	assert.Equal(t, "default", SessionFrom(context.Background()))
}

type fakeTools struct {
	name string
	args map[string]any
	res  any
	err  error
}

func (f *fakeTools) CallTool(_ context.Context, name string, args map[string]any) (any, error) {
	f.name, f.args = name, args
	return f.res, f.err
}

func TestUTCPTranslate(t *testing.T) {
	tools := &fakeTools{res: map[string]any{"translation": "ಗೋಧಿ"}}
	out, err := NewUTCP(tools, "").Translate(context.Background(), "Wheat", "kn")
	require.NoError(t, err)
	assert.Equal(t, "ಗೋಧಿ", out)
	assert.Equal(t, DefaultUTCPTool, tools.name)
	assert.Equal(t, map[string]any{"text": "Wheat", "target": "kn"}, tools.args)

	tools.res = "plain"
	out, err = NewUTCP(tools, "custom.tool").Translate(context.Background(), "x", "kn")
	require.NoError(t, err)
	assert.Equal(t, "plain", out)
	assert.Equal(t, "custom.tool", tools.name)
}

func TestUTCPFailures(t *testing.T) {
	_, err := NewUTCP(&fakeTools{err: errors.New("down")}, "").Translate(context.Background(), "x", "kn")
	assert.ErrorIs(t, err, ErrTranslationUnavailable)

	_, err = NewUTCP(&fakeTools{res: 42}, "").Translate(context.Background(), "x", "kn")
	assert.ErrorIs(t, err, ErrTranslationUnavailable)

	_, err = NewUTCP(nil, "").Translate(context.Background(), "x", "kn")
	assert.ErrorIs(t, err, ErrTranslationUnavailable)
}

func TestIdentity(t *testing.T) {
	out, err := Identity{}.Translate(context.Background(), "Urea", "en")
	require.NoError(t, err)
	assert.Equal(t, "Urea", out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Identity{}.Translate(ctx, "Urea", "en")
	assert.ErrorIs(t, err, ErrTranslationUnavailable)
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	ok := WithLogging("none", Identity{}, log)
	_, err := ok.Translate(context.Background(), "a", "hi")
	require.NoError(t, err)

	failing := WithLogging("test", Func(func(context.Context, string, string) (string, error) {
		return "", unavailable("test", errors.New("down"))
	}), log)
	_, err = failing.Translate(context.Background(), "a", "hi")
	require.ErrorIs(t, err, ErrTranslationUnavailable)

	assert.Equal(t, 1, logs.FilterMessage("translated").Len())
	assert.Equal(t, 1, logs.FilterMessage("translation failed").Len())

	assert.Equal(t, Identity{}, WithLogging("none", Identity{}, nil))
}
