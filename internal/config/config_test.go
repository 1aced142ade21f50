package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
telegram:
  bot_token: "123:abc"
backend:
  base_url: "http://localhost:5000/api"
admins:
  - 111
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "x-access-token", cfg.Backend.TokenHeader)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 9, cfg.UI.PostsPageSize)
	assert.Equal(t, 10, cfg.UI.BookingsPageSize)
	assert.Equal(t, 8, cfg.UI.FeedbackPageSize)
	assert.Equal(t, 20, cfg.UI.RateLimitMsgs)
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_BANKET_TOKEN", "from-env")
	cfg, err := Load(writeConfig(t, `
telegram:
  bot_token: "123:abc"
backend:
  base_url: "http://localhost:5000/api"
  token: "${TEST_BANKET_TOKEN}"
admins:
  - 111
`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Backend.Token)
}

func TestValidateRequiresBotToken(t *testing.T) {
	_, err := Load(writeConfig(t, `
backend:
  base_url: "http://localhost:5000/api"
admins:
  - 111
`))
	assert.Error(t, err)
}

func TestValidateRequiresBackendURL(t *testing.T) {
	_, err := Load(writeConfig(t, `
telegram:
  bot_token: "123:abc"
admins:
  - 111
`))
	assert.Error(t, err)
}

func TestValidateRequiresAdmins(t *testing.T) {
	_, err := Load(writeConfig(t, `
telegram:
  bot_token: "123:abc"
backend:
  base_url: "http://localhost:5000/api"
`))
	assert.Error(t, err)
}

func TestLoadCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - name: Wedding
    sort_order: 1
  - name: Birthday
    sort_order: 2
`), 0o644))

	categories, err := LoadCategories(path)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Wedding", categories[0].Name)
}

func TestValidateCategories(t *testing.T) {
	assert.Error(t, ValidateCategories([]Category{{Name: ""}}))
	assert.Error(t, ValidateCategories([]Category{{Name: "A"}, {Name: "A"}}))
	assert.NoError(t, ValidateCategories([]Category{{Name: "A"}, {Name: "B"}}))
}
