package main

import (
	"flag"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of the environment variables overriding the flag defaults,
// e.g. SEAMCARVER_CONC=4.
const envPrefix = "SEAMCARVER"

// loadConfig overlays the values found in the optional config file and the environment
// on top of the flags the user did not set explicitly. Explicit flags always win.
func loadConfig(fset *flag.FlagSet, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	explicit := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	var err error
	fset.VisitAll(func(f *flag.Flag) {
		if err != nil || explicit[f.Name] || f.Name == "config" {
			return
		}
		if v.IsSet(f.Name) {
			err = fset.Set(f.Name, v.GetString(f.Name))
		}
	})
	return err
}

// parseLevel maps the -log flag to a zerolog level, defaulting to info.
func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return level
}
