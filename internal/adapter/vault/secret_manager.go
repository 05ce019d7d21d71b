package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

// SecretManager reads production credentials from HashiCorp Vault.
// Config-gated: when no Vault address is configured, the composition
// root falls back to plain environment variables.
type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

func (sm *SecretManager) read(path, field string) (string, error) {
	secret, err := sm.client.Logical().Read(path)
	if err != nil {
		return "", err
	}
	if secret == nil {
		return "", fmt.Errorf("vault: no secret at %s", path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("vault: unexpected secret shape at %s", path)
	}
	value, ok := data[field].(string)
	if !ok {
		return "", fmt.Errorf("vault: missing field %s at %s", field, path)
	}
	return value, nil
}

func (sm *SecretManager) GetDatabaseURL() (string, error) {
	return sm.read("secret/data/database", "connection_string")
}

func (sm *SecretManager) GetGeminiAPIKey() (string, error) {
	return sm.read("secret/data/gemini", "api_key")
}

func (sm *SecretManager) GetSpeechAPIKey() (string, error) {
	return sm.read("secret/data/speech", "api_key")
}
