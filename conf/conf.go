// Package conf loads the platform configuration from fulexo.yaml and
// FULEXO_* environment variables.
package conf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/pkg/xcache"
	"github.com/fulexo/platform/internal/pkg/xredis"
	"github.com/fulexo/platform/internal/server"
	"github.com/fulexo/platform/internal/server/db"
	"github.com/fulexo/platform/internal/server/worker"
)

// Config is an fx.Out struct: providing Load gives every section to the
// dependency graph as its own type.
type Config struct {
	fx.Out `yaml:"-" json:"-" conf:"-"`

	Log       log.Config    `conf:"log" yaml:"log" json:"log"`
	APIServer server.Config `conf:"server" yaml:"server" json:"server"`
	DB        db.Config     `conf:"db" yaml:"db" json:"db"`
	Redis     xredis.Config `conf:"redis" yaml:"redis" json:"redis"`
	Cache     xcache.Config `conf:"cache" yaml:"cache" json:"cache"`
	Worker    worker.Config `conf:"worker" yaml:"worker" json:"worker"`
}

// Load reads fulexo.yaml from the working directory, ./conf or
// /etc/fulexo, then overlays FULEXO_* environment variables. A missing
// file is fine; env-only deployments are supported.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("fulexo")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./conf")
	v.AddConfigPath("/etc/fulexo")

	v.SetEnvPrefix("FULEXO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
	}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	config.APIServer = config.APIServer.WithDefaults()
	config.Worker = config.Worker.WithDefaults()

	return config, nil
}
