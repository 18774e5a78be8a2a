// Package cliconfig loads the CLI's run configuration from a config file,
// environment variables, and defaults, the way
// Sumatoshi-tech-codefang/internal/config layers viper sources before
// handing back a plain struct. The ipfilter core never sees a *viper.Viper;
// it only ever receives the resulting ipfilter.Config value.
package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/bgpbloom/ipfilter"
)

const (
	configName    = ".ipfilter"
	configType    = "yaml"
	envPrefix     = "IPFILTER"
	envKeySep     = "_"
	defaultFPP    = 1e-6
	defaultWeight = "equal"
)

// Settings is the CLI-level configuration, a superset of ipfilter.Config:
// it also carries the input file paths the core itself has no notion of.
type Settings struct {
	Protocol     string
	FPP          float64
	K            int
	M            int
	Weighting    string
	PrefixFile   string
	WeightFile   string
	TrafficFile  string
	MetricsAddr  string
}

// Load reads configuration from the environment (IPFILTER_* variables), a
// config file, and defaults, in that order of precedence. The config file
// is configPath if non-empty, otherwise .ipfilter.yaml searched in the
// working directory and then $HOME; a searched file that is absent is not
// an error. Flag overrides are applied by each command after Load returns.
func Load(configPath string) (Settings, error) {
	v := viper.New()

	v.SetDefault("protocol", "v4")
	v.SetDefault("fpp", defaultFPP)
	v.SetDefault("k", 0)
	v.SetDefault("m", 0)
	v.SetDefault("weighting", defaultWeight)
	v.SetDefault("metrics_addr", "")

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySep))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	s := Settings{
		Protocol:    v.GetString("protocol"),
		FPP:         v.GetFloat64("fpp"),
		K:           v.GetInt("k"),
		M:           v.GetInt("m"),
		Weighting:   v.GetString("weighting"),
		PrefixFile:  v.GetString("prefix_file"),
		WeightFile:  v.GetString("weight_file"),
		TrafficFile: v.GetString("traffic_file"),
		MetricsAddr: v.GetString("metrics_addr"),
	}

	if err := s.validate(); err != nil {
		return Settings{}, fmt.Errorf("validate config: %w", err)
	}
	return s, nil
}

// validate checks only the settings Load itself resolves. PrefixFile and
// TrafficFile are deliberately not checked here: commands may still supply
// them via a flag override after Load returns, so that check belongs to
// each command's Run, once flag overrides are applied.
func (s Settings) validate() error {
	if s.Protocol != "v4" && s.Protocol != "v6" {
		return fmt.Errorf("protocol must be v4 or v6, got %q", s.Protocol)
	}
	if s.FPP <= 0 || s.FPP >= 1 {
		return fmt.Errorf("fpp must be in (0, 1), got %v", s.FPP)
	}
	return nil
}

// BuildConfig resolves Settings to the core's explicit ipfilter.Config.
func (s Settings) BuildConfig() ipfilter.Config {
	protocol := ipfilter.V4
	if s.Protocol == "v6" {
		protocol = ipfilter.V6
	}

	weighting := ipfilter.Equal
	switch s.Weighting {
	case "by-prefix-count":
		weighting = ipfilter.ByPrefixCount
	case "by-address-space":
		weighting = ipfilter.ByAddressSpace
	}

	return ipfilter.Config{
		Protocol:  protocol,
		FPP:       s.FPP,
		K:         s.K,
		M:         s.M,
		Weighting: weighting,
	}
}
