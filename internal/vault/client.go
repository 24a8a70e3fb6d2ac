package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/vault/api"
)

// ErrSecretNotFound is returned when no secret exists at the requested path
var ErrSecretNotFound = errors.New("secret not found")

// Client wraps HashiCorp Vault API
type Client struct {
	client  *api.Client
	kvMount string
}

// Config holds Vault configuration
type Config struct {
	Address string
	Token   string
	KVMount string // KV version 2 mount, "secret" by default
}

// NewClient creates a new Vault client
func NewClient(cfg *Config) (*Client, error) {
	config := api.DefaultConfig()
	config.Address = cfg.Address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	client.SetToken(cfg.Token)

	mount := cfg.KVMount
	if mount == "" {
		mount = "secret"
	}

	return &Client{client: client, kvMount: mount}, nil
}

// StoreSecret stores a secret in Vault KV
func (c *Client) StoreSecret(ctx context.Context, path string, data map[string]interface{}) error {
	secretPath := fmt.Sprintf("%s/data/%s", c.kvMount, path)

	payload := map[string]interface{}{
		"data": data,
	}

	if _, err := c.client.Logical().WriteWithContext(ctx, secretPath, payload); err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}

	return nil
}

// GetSecret retrieves a secret from Vault KV
func (c *Client) GetSecret(ctx context.Context, path string) (map[string]interface{}, error) {
	secretPath := fmt.Sprintf("%s/data/%s", c.kvMount, path)

	secret, err := c.client.Logical().ReadWithContext(ctx, secretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrSecretNotFound, path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid secret data format")
	}

	return data, nil
}

// LoadSecrets reads the secret at path and keeps its string values
func (c *Client) LoadSecrets(ctx context.Context, path string) (map[string]string, error) {
	data, err := c.GetSecret(ctx, path)
	if err != nil {
		return nil, err
	}

	secrets := make(map[string]string, len(data))
	for k, v := range data {
		if s, ok := v.(string); ok {
			secrets[k] = s
		}
	}
	return secrets, nil
}

// Health checks Vault health status
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}

	if !health.Initialized {
		return fmt.Errorf("vault is not initialized")
	}

	if health.Sealed {
		return fmt.Errorf("vault is sealed")
	}

	return nil
}
