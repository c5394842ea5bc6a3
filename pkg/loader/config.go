package loader

import (
	"errors"

	"github.com/joeshaw/envdecode"
)

// Config selects the content directory. It can be read from the environment
// with ConfigFromEnv.
type Config struct {
	// ContentPath is the directory holding frameworks/. ENV: CONTENT_PATH
	ContentPath string `env:"CONTENT_PATH,default=."`
	// Watch clears cached content when files change. ENV: CONTENT_WATCH
	Watch bool `env:"CONTENT_WATCH,default=false"`
}

// ConfigFromEnv decodes Config from environment variables, falling back to
// the tag defaults when none are set.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, err
	}
	if cfg.ContentPath == "" {
		cfg.ContentPath = "."
	}
	return cfg, nil
}
