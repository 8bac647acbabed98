package src

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	utcp "github.com/universal-tool-calling-protocol/go-utcp"
)

// BuildUTCP initializes a UTCP client with a resolved provider.json path.
// An empty providerPath falls back to ~/utcp/provider.json.
func BuildUTCP(ctx context.Context, providerPath string) (utcp.UtcpClientInterface, error) {
	if providerPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		providerPath = filepath.Join(home, "utcp", "provider.json")
	}

	// Check that the file exists
	if _, err := os.Stat(providerPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("UTCP unavailable: providers file missing at %s", providerPath)
	}

	cfg := &utcp.UtcpClientConfig{
		ProvidersFilePath: providerPath,
	}

	client, err := utcp.NewUTCPClient(ctx, cfg, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("UTCP unavailable: %w", err)
	}
	return client, nil
}
