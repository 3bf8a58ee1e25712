package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platdesign/i18ngoose/pkg/config"
	"github.com/platdesign/i18ngoose/pkg/i18n"
)

type appConfig struct {
	I18n i18n.Options
	Addr string `env:"TEST_HTTP_ADDR" envDefault:":8080"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600))
	return name
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("I18N_LANGUAGES", "de,en,fr")
	t.Setenv("I18N_DEFAULT_LANGUAGE", "en")

	cfg, err := config.Load[appConfig]()
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en", "fr"}, cfg.I18n.Languages)
	assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.NoError(t, cfg.I18n.Validate())
}

func TestLoad_EnvFile(t *testing.T) {
	name := writeEnv(t, "TEST_REQUIRED_VALUE=from-file\n")
	t.Cleanup(func() { os.Unsetenv("TEST_REQUIRED_VALUE") })

	cfg, err := config.Load[requiredConfig](name)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Required)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	t.Setenv("TEST_REQUIRED_VALUE", "from-env")
	name := writeEnv(t, "TEST_REQUIRED_VALUE=from-file\n")

	cfg, err := config.Load[requiredConfig](name)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Required)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing required value", func(t *testing.T) {
		os.Unsetenv("TEST_REQUIRED_VALUE")
		_, err := config.Load[requiredConfig]()
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("missing env file", func(t *testing.T) {
		_, err := config.Load[requiredConfig](filepath.Join(t.TempDir(), "missing.env"))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}

func TestMustLoad(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_VALUE")
	assert.Panics(t, func() {
		config.MustLoad[requiredConfig]()
	})

	t.Setenv("TEST_REQUIRED_VALUE", "ok")
	assert.NotPanics(t, func() {
		cfg := config.MustLoad[requiredConfig]()
		assert.Equal(t, "ok", cfg.Required)
	})
}
