package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gitscope/pkg/errors"
)

// Config is the optional per-user configuration file. All fields have
// working defaults; a missing file is not an error.
type Config struct {
	// Username overrides git user.name for remote ownership decisions.
	Username string `toml:"username"`

	// LogArgs are extra git log tokens prepended to every invocation when
	// the command line supplies no passthrough arguments.
	LogArgs []string `toml:"log_args"`
}

// configPath returns the config file location using the XDG standard
// (~/.config/gitscope/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file if present. A missing file yields the
// zero Config; a malformed file is an input error so typos surface instead
// of silently changing behavior.
func loadConfig() (Config, error) {
	var cfg Config
	path, err := configPath()
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve config path")
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
