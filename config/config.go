// Package config registers lyra's settings with viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lyra-cli/lyra/constant"
	"github.com/lyra-cli/lyra/filesystem"
	"github.com/lyra-cli/lyra/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps a key such as audio.sample_rate to its env form.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, LYRA_* environment variables and lyra.toml, in
// increasing priority. A missing config file is not an error.
func Setup() error {
	viper.SetFs(filesystem.API())
	viper.SetConfigName(constant.Lyra)
	viper.SetConfigType("toml")
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Lyra)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil, errors.As(err, &notFound):
		return nil
	default:
		return fmt.Errorf("read config: %w", err)
	}
}
