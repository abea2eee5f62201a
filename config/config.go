// Package config registers every setting with its default and loads
// playalong.toml and PLAYALONG_* environment overrides through viper.
package config

import (
	"errors"
	"strings"

	"github.com/playalong-cli/playalong/constant"
	"github.com/playalong-cli/playalong/filesystem"
	"github.com/playalong-cli/playalong/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps a key such as timeline.zoom_level to its env suffix.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup applies defaults, binds the environment and reads the config file.
// A missing file is not an error.
func Setup() error {
	viper.SetConfigName(constant.Playalong)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Playalong)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, k := range EnvExposed {
		viper.MustBindEnv(k)
	}

	viper.SetTypeByDefaultValue(true)
	for k, field := range Default {
		viper.SetDefault(k, field.Value)
	}

	err := viper.ReadInConfig()
	if errors.As(err, new(viper.ConfigFileNotFoundError)) {
		return nil
	}
	return err
}
