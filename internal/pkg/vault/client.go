// Package vault loads upstream API credentials from HashiCorp Vault's
// KV v2 engine. Secrets are fetched once per process and cached; a
// reconciliation run re-reads the cache, not Vault.
package vault

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	vaultapi "github.com/hashicorp/vault/api"

	"github.com/venueops/timecard-recon-go/internal/config"
)

type Client struct {
	api        *vaultapi.Client
	mountPoint string
	secretPath string
	logger     *slog.Logger

	mu     sync.Mutex
	cached map[string]string
}

func NewClient(cfg config.VaultConfig, logger *slog.Logger) (*Client, error) {
	apiCfg := vaultapi.DefaultConfig()
	apiCfg.Address = cfg.Address

	api, err := vaultapi.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	if cfg.Token != "" {
		api.SetToken(cfg.Token)
	}

	return &Client{
		api:        api,
		mountPoint: cfg.MountPoint,
		secretPath: cfg.SecretPath,
		logger:     logger,
	}, nil
}

// Load implements recon.CredentialSource. The first call reads the
// secret from Vault; later calls return the cached copy.
func (c *Client) Load(ctx context.Context) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil {
		return c.cached, nil
	}

	secret, err := c.api.KVv2(c.mountPoint).Get(ctx, c.secretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret %s/%s: %w", c.mountPoint, c.secretPath, err)
	}

	creds := make(map[string]string, len(secret.Data))
	for key, value := range secret.Data {
		s, ok := value.(string)
		if !ok {
			c.logger.Warn("skipping non-string secret value", slog.String("key", key))
			continue
		}
		creds[key] = s
	}

	c.logger.Info("vault credentials loaded",
		slog.String("mount", c.mountPoint),
		slog.String("path", c.secretPath),
		slog.Int("keys", len(creds)),
	)
	c.cached = creds
	return creds, nil
}

// Credential returns one named secret from the loaded set.
func (c *Client) Credential(ctx context.Context, name string) (string, error) {
	creds, err := c.Load(ctx)
	if err != nil {
		return "", err
	}
	value, ok := creds[name]
	if !ok {
		return "", fmt.Errorf("secret %q not present at %s/%s", name, c.mountPoint, c.secretPath)
	}
	return value, nil
}
