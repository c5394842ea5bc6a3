package loader_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formcontent/pkg/loader"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CONTENT_PATH", "/srv/content")
	t.Setenv("CONTENT_WATCH", "true")

	cfg, err := loader.ConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, loader.Config{ContentPath: "/srv/content", Watch: true}, cfg)

	l := loader.NewFromConfig(cfg)
	require.Equal(t, "/srv/content", l.Root())
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("CONTENT_PATH", "")
	t.Setenv("CONTENT_WATCH", "")

	cfg, err := loader.ConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, ".", cfg.ContentPath)
	require.False(t, cfg.Watch)
}
