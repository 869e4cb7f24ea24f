package config

import (
	"os"

	"github.com/pseudomuto/colsweep/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads .env (when present) and then colsweep.yaml from the working
	// directory. Returns nil if the config file doesn't exist so that commands
	// driven purely by flags (and help, types) still work.
	func() (*Config, error) {
		if err := LoadEnv(consts.DefaultEnvFile); err != nil {
			return nil, err
		}

		if _, err := os.Stat(consts.DefaultConfigFile); os.IsNotExist(err) {
			return nil, nil
		}

		return LoadConfigFile(consts.DefaultConfigFile)
	},
))
