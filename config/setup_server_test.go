package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
serverAddr: ":8080"
secretLinks:
  secret_key: "very-secret"
site:
  base_url: "https://zenodo.example"
`))
	require.NoError(t, err)

	ttl, err := cfg.EmailConfirmationTTL()
	require.NoError(t, err)
	assert.Equal(t, 5*24*time.Hour, ttl)
	assert.Equal(t, "mail:outbox", cfg.Mail.OutboxKey)
	assert.Equal(t, "/records/{resource_id}", cfg.SecretLinks.LinkEndpoint)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL())
	assert.Equal(t, "https://zenodo.example", cfg.Site.BaseURL)
}

func TestParseConfig_MissingSecret(t *testing.T) {
	_, err := ParseConfig([]byte(`serverAddr: ":8080"`))
	assert.Error(t, err)
}

func TestParseConfig_BadTTL(t *testing.T) {
	_, err := ParseConfig([]byte(`
secretLinks:
  secret_key: "very-secret"
  email_confirmation_ttl: "five days"
`))
	assert.Error(t, err)
}
