package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigLexiconPath     = "lexicon-path"
	ConfigDefaultLexicon  = "default-lexicon"
	ConfigDebug           = "debug"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigAutoplayGames   = "autoplay-games"
	ConfigMaxSearchNodes  = "max-search-nodes"
	ConfigCPUProfile      = "cpu-profile"
	ConfigConfigFile      = "config-file"
)

// Config is a viper instance; settings come (in order of precedence) from
// command-line flags, WORDSMITH_ environment variables, an optional
// config file, and the defaults below.
type Config struct {
	*viper.Viper
	// args are the command-line arguments left after the flags.
	args []string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(ConfigLexiconPath, "./data/lexica")
	v.SetDefault(ConfigDefaultLexicon, "NWL20")
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigAutoplayThreads, 0)
	v.SetDefault(ConfigAutoplayGames, 100)
	v.SetDefault(ConfigMaxSearchNodes, 0)
	v.SetDefault(ConfigCPUProfile, "")
	return v
}

// DefaultConfig returns a config holding only the defaults. Tests use it.
func DefaultConfig() *Config {
	return &Config{Viper: newViper()}
}

// Load parses args and reads the environment and the config file.
func (c *Config) Load(args []string) error {
	c.Viper = newViper()

	fs := pflag.NewFlagSet("wordsmith", pflag.ContinueOnError)
	fs.String(ConfigLexiconPath, "./data/lexica", "directory holding lexicon files")
	fs.String(ConfigDefaultLexicon, "NWL20", "the default lexicon to use")
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.Int(ConfigAutoplayThreads, 0, "number of games to play at once (0 = number of CPUs)")
	fs.Int(ConfigAutoplayGames, 100, "number of games for autoplay")
	fs.Int(ConfigMaxSearchNodes, 0, "node budget per move generation (0 = unlimited)")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigConfigFile, "", "optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("WORDSMITH")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
			log.Warn().Str("config-file", cfgFile).Msg("config file not found")
		}
	}
	return nil
}

// Args returns the non-flag arguments given to Load.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths makes relative data paths relative to basepath, the
// directory of the executable.
func (c *Config) AdjustRelativePaths(basepath string) {
	p := c.GetString(ConfigLexiconPath)
	if !filepath.IsAbs(p) {
		c.Set(ConfigLexiconPath, filepath.Join(basepath, p))
	}
}

// SanitizedSettings are the settings suitable for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
