// advisor: multilingual crop advisor over a local crop dataset.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/agri-advisor/src"
	"github.com/Protocol-Lattice/agri-advisor/src/config"
	"github.com/Protocol-Lattice/agri-advisor/src/dataset"
	"github.com/Protocol-Lattice/agri-advisor/src/lang"
	"github.com/Protocol-Lattice/agri-advisor/src/logging"
	"github.com/Protocol-Lattice/agri-advisor/src/mcptools"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
)

var (
	configPath  string
	datasetPath string
	translator  string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "advisor",
		Short: "Multilingual crop advisor: fertilizer, humidity and temperature insights",
		Long: `advisor answers questions about crops from a local dataset and replies in the
language you pick.

Without a subcommand it opens the interactive terminal UI.

Translation providers:
  google   Google translate endpoint (default)
  gemini   Gemini via go-agent (needs GOOGLE_API_KEY or GEMINI_API_KEY)
  utcp     UTCP tool call (translate.text by default)
  none     no translation`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default advisor.yaml if present)")
	root.PersistentFlags().StringVar(&datasetPath, "dataset", "", "Dataset file, overrides config")
	root.PersistentFlags().StringVar(&translator, "translator", "", "Translation provider, overrides config")

	root.AddCommand(
		newAskCmd(),
		newLanguagesCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// loadConfig applies flag overrides on top of the file and environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if datasetPath != "" {
		cfg.DatasetPath = datasetPath
	}
	if translator != "" {
		cfg.Translator.Provider = strings.ToLower(translator)
	}
	return cfg, cfg.Validate()
}

// setup loads config and builds deps. toFile sends logs to the configured
// file so they stay off the TUI.
func setup(ctx context.Context, toFile bool) (*config.Config, *src.Deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	var paths []string
	if toFile && cfg.Logging.File != "" {
		paths = append(paths, cfg.Logging.File)
	}
	log, err := logging.New(cfg.Logging.Level, paths...)
	if err != nil {
		return nil, nil, err
	}
	deps, err := src.NewDeps(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return cfg, deps, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	_, deps, err := setup(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Log.Sync() }()

	startDir, _ := os.Getwd()
	deps.Log.Info("starting tui", zap.String("dir", startDir), zap.String("version", version))
	return src.RunTUI(cmd.Context(), deps, startDir)
}

// ---------------------------------------------------------------------------
// ask (one prompt, no TUI)
// ---------------------------------------------------------------------------

func newAskCmd() *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Answer one prompt and print the reply",
		Example: `  advisor ask --language Hindi "fertilizer for Wheat"
  advisor ask -l ta humidity`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, deps, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Log.Sync() }()

			res, err := src.RunHeadless(cmd.Context(), deps, language, strings.Join(args, " "))
			if res != nil {
				fmt.Fprintln(cmd.OutOrStdout(), res.Reply.String())
			}
			if errors.Is(err, dataset.ErrDatasetLoad) {
				return fmt.Errorf("dataset %s: %w", deps.Loader.Path, err)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", lang.Default().Name,
		"Reply language, name or code: "+strings.Join(lang.Names(), ", "))
	return cmd
}

// ---------------------------------------------------------------------------
// languages
// ---------------------------------------------------------------------------

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported reply languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, l := range lang.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", l.Name, l.Code)
			}
		},
	}
}

// ---------------------------------------------------------------------------
// mcp (tool server)
// ---------------------------------------------------------------------------

func newMCPCmd() *cobra.Command {
	var transport, addr string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve advisor_languages and advisor_ask over MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, deps, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Log.Sync() }()

			if cmd.Flags().Changed("transport") {
				cfg.MCP.Transport = transport
			}
			if cmd.Flags().Changed("addr") {
				cfg.MCP.Addr = addr
			}
			deps.Log.Info("mcp server starting",
				zap.String("transport", cfg.MCP.Transport),
				zap.String("addr", cfg.MCP.Addr))
			return mcptools.Serve(mcptools.NewServer(deps, version), cfg.MCP.Transport, cfg.MCP.Addr)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "stdio", "stdio or http")
	cmd.Flags().StringVar(&addr, "addr", ":8090", "Listen address for http transport")
	return cmd
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "advisor version %s (%s)\n", version, commit)
		},
	}
}
