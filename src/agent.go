package src

import (
	"context"
	"fmt"

	agent "github.com/Protocol-Lattice/go-agent"
	adk "github.com/Protocol-Lattice/go-agent/src/adk"
	"github.com/Protocol-Lattice/go-agent/src/adk/modules"
	adkmodules "github.com/Protocol-Lattice/go-agent/src/adk/modules"
	"github.com/Protocol-Lattice/go-agent/src/memory"
	"github.com/Protocol-Lattice/go-agent/src/models"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/agri-advisor/src/config"
	"github.com/Protocol-Lattice/agri-advisor/src/dataset"
	"github.com/Protocol-Lattice/agri-advisor/src/translate"
)

// BuildAgent assembles the gemini-backed agent used by the gemini provider.
// Each advisor session gets its own memory space via the session ID.
func BuildAgent(ctx context.Context, model string) (*agent.Agent, error) {
	memOpts := memory.DefaultOptions()
	builder, err := adk.New(
		ctx,
		adk.WithDefaultSystemPrompt(TranslatorSystemPrompt),
		adk.WithModules(
			modules.InMemoryMemoryModule(512, memory.AutoEmbedder(), &memOpts),
			adkmodules.NewModelModule("gemini", func(_ context.Context) (models.Agent, error) {
				return models.NewGeminiLLM(ctx, model, "Agricultural advisory translator")
			}),
		),
	)
	if err != nil {
		return nil, err
	}
	return builder.BuildAgent(ctx)
}

// BuildTranslator returns the configured provider wrapped with logging.
func BuildTranslator(ctx context.Context, cfg config.TranslatorConfig, log *zap.Logger) (translate.Translator, error) {
	var tr translate.Translator
	switch cfg.Provider {
	case translate.ProviderGoogle:
		timeout, err := cfg.TimeoutDuration()
		if err != nil {
			return nil, err
		}
		tr = translate.NewGoogle(cfg.BaseURL, timeout)
	case translate.ProviderGemini:
		ag, err := BuildAgent(ctx, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("gemini translator: %w", err)
		}
		tr = translate.NewAgent(ag)
	case translate.ProviderUTCP:
		client, err := BuildUTCP(ctx, cfg.UTCPProviders)
		if err != nil {
			return nil, err
		}
		tr = translate.NewUTCP(client, cfg.UTCPTool)
	case translate.ProviderNone:
		tr = translate.Identity{}
	default:
		return nil, fmt.Errorf("unknown translator provider %q", cfg.Provider)
	}
	return translate.WithLogging(cfg.Provider, tr, log), nil
}

// Deps are the collaborators shared by the TUI, ask and mcp surfaces.
type Deps struct {
	Translator translate.Translator
	Loader     *dataset.Loader
	Log        *zap.Logger
}

// NewDeps wires a translator and the fixed-path dataset loader from cfg.
func NewDeps(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Deps, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tr, err := BuildTranslator(ctx, cfg.Translator, log)
	if err != nil {
		return nil, err
	}
	log.Info("translator ready", zap.String("provider", cfg.Translator.Provider))
	return &Deps{
		Translator: tr,
		Loader:     dataset.NewLoader(cfg.DatasetPath, log),
		Log:        log,
	}, nil
}
