package src

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/agri-advisor/src/advisor"
	"github.com/Protocol-Lattice/agri-advisor/src/config"
	"github.com/Protocol-Lattice/agri-advisor/src/dataset"
	"github.com/Protocol-Lattice/agri-advisor/src/translate"
)

func testDeps(t *testing.T, tr translate.Translator, content string) *Deps {
	t.Helper()
	path := writeDataset(t, t.TempDir(), content)
	return &Deps{Translator: tr, Loader: dataset.NewLoader(path, nil), Log: zap.NewNop()}
}

func TestRunHeadlessTable(t *testing.T) {
	deps := testDeps(t, tagger, cropsCSV)

	res, err := RunHeadless(context.Background(), deps, "Hindi", "fertilizer for Wheat")
	require.NoError(t, err)
	assert.Equal(t, "Hindi", res.Language)
	assert.NotEmpty(t, res.SessionID)
	require.True(t, res.Reply.IsTable())
	assert.Equal(t, [][]string{{"[hi]Urea", "[hi]10", "[hi]20", "[hi]30"}}, res.Reply.Table.Rows)
}

func TestRunHeadlessDefaultsToEnglish(t *testing.T) {
	deps := testDeps(t, tagger, cropsCSV)

	res, err := RunHeadless(context.Background(), deps, "", "fertilizer for Barley")
	require.NoError(t, err)
	assert.Equal(t, "English", res.Language)
	assert.Equal(t, "No data available for Barley.", res.Reply.Message)
}

func TestRunHeadlessErrors(t *testing.T) {
	ctx := context.Background()

	_, err := RunHeadless(ctx, testDeps(t, tagger, cropsCSV), "Klingon", "humidity")
	assert.ErrorIs(t, err, advisor.ErrUnknownLanguage)

	_, err = RunHeadless(ctx, testDeps(t, tagger, cropsCSV), "Hindi", "")
	assert.ErrorIs(t, err, advisor.ErrEmptyPrompt)

	res, err := RunHeadless(ctx, testDeps(t, tagger, cropsCSV), "Hindi", "  ")
	require.NoError(t, err)
	assert.Equal(t, "[hi]"+advisor.MsgFallback, res.Reply.Message)

	_, err = RunHeadless(ctx, nil, "Hindi", "humidity")
	assert.Error(t, err)

	res, err = RunHeadless(ctx, testDeps(t, tagger, "Crop Type\nWheat\n"), "Tamil", "humidity")
	assert.ErrorIs(t, err, dataset.ErrDatasetLoad)
	require.NotNil(t, res)
	assert.Equal(t, "[ta]"+advisor.MsgInvalidData, res.Reply.Message)

	failing := translate.Func(func(context.Context, string, string) (string, error) {
		return "", translate.ErrTranslationUnavailable
	})
	_, err = RunHeadless(ctx, testDeps(t, failing, cropsCSV), "Hindi", "humidity")
	assert.True(t, errors.Is(err, translate.ErrTranslationUnavailable))
}

func TestBuildTranslatorProviders(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		tr, err := BuildTranslator(ctx, config.TranslatorConfig{Provider: translate.ProviderNone}, zap.NewNop())
		require.NoError(t, err)
		out, err := tr.Translate(ctx, "Urea", "hi")
		require.NoError(t, err)
		assert.Equal(t, "Urea", out)
	})

	t.Run("google", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[[["यूरिया","Urea",null,null,10]],null,"en"]`))
		}))
		defer srv.Close()

		tr, err := BuildTranslator(ctx, config.TranslatorConfig{
			Provider: translate.ProviderGoogle,
			BaseURL:  srv.URL,
			Timeout:  "2s",
		}, zap.NewNop())
		require.NoError(t, err)
		out, err := tr.Translate(ctx, "Urea", "hi")
		require.NoError(t, err)
		assert.Equal(t, "यूरिया", out)
	})

	t.Run("utcp without providers file", func(t *testing.T) {
		_, err := BuildTranslator(ctx, config.TranslatorConfig{
			Provider:      translate.ProviderUTCP,
			UTCPProviders: filepath.Join(t.TempDir(), "providers.json"),
		}, zap.NewNop())
		assert.ErrorContains(t, err, "providers file missing")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := BuildTranslator(ctx, config.TranslatorConfig{Provider: "babelfish"}, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestNewDepsUsesConfiguredDataset(t *testing.T) {
	cfg := config.Default()
	cfg.Translator.Provider = translate.ProviderNone
	cfg.DatasetPath = writeDataset(t, t.TempDir(), cropsCSV)

	deps, err := NewDeps(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.DatasetPath, deps.Loader.Path)

	res, err := RunHeadless(context.Background(), deps, "Gujarati", "temperature")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Wheat", "22"}, {"Rice", "28"}}, res.Reply.Table.Rows)
}
