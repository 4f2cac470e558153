package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults are user-tunable fallbacks applied when the corresponding
// flags are not given on the command line.
type Defaults struct {
	PackageManager string // "yarn", "pnpm", "npm" or "" for no preference
	TypeScript     bool
	StyleSheets    bool
}

// LoadDefaults reads the optional loom.yml from the working directory or
// the user's home directory, with LOOM_* environment overrides. A .env
// file in the working directory is loaded first so it can feed those
// overrides. No config file at all is fine and yields the built-ins.
func LoadDefaults() (Defaults, error) {
	// Best effort: a missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("loom")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetDefault("defaults.package_manager", "")
	v.SetDefault("defaults.typescript", true)
	v.SetDefault("defaults.scss", true)

	// Enable environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("LOOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return builtinDefaults(), fmt.Errorf("reading loom.yml: %w", err)
		}
	}

	d := Defaults{
		PackageManager: strings.ToLower(v.GetString("defaults.package_manager")),
		TypeScript:     v.GetBool("defaults.typescript"),
		StyleSheets:    v.GetBool("defaults.scss"),
	}

	switch d.PackageManager {
	case "", "yarn", "pnpm", "npm":
	default:
		return builtinDefaults(), fmt.Errorf("unknown package manager %q in loom.yml", d.PackageManager)
	}

	return d, nil
}

func builtinDefaults() Defaults {
	return Defaults{TypeScript: true, StyleSheets: true}
}
