package config

import (
	"errors"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug            = "debug"
	ConfigCPUProfile       = "cpu-profile"
	ConfigMemProfile       = "mem-profile"
	ConfigBotLevel         = "bot-level"
	ConfigTTMemoryFraction = "tt-memory-fraction"
	ConfigSurveySamples    = "survey-samples"
	ConfigSurveyDepth      = "survey-depth"
	ConfigSurveyMaxPlies   = "survey-max-plies"
	ConfigSurveyThreads    = "survey-threads"
	ConfigSurveyOutput     = "survey-output"
	ConfigSurveyRepetition = "survey-repetition-draws"
)

// Config holds every setting. Values come, in increasing priority, from
// defaults, $HOME/.hexstack/config.yaml, HEXSTACK_* environment variables
// and command-line flags.
type Config struct {
	viper.Viper
	sync.Mutex

	args []string
}

func (c *Config) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("hexstack", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	fs.String(ConfigBotLevel, "decent", "level of the shell's bot: gibberish, noob, decent, sharp, tough, grandmaster or perfect-N")
	fs.Float64(ConfigTTMemoryFraction, 0.1, "fraction of total memory the transposition table may take")
	fs.Int(ConfigSurveySamples, 100, "games played after each first move")
	fs.Int(ConfigSurveyDepth, 4, "search depth of the survey bots")
	fs.Int(ConfigSurveyMaxPlies, 100, "plies after which a survey game is a draw")
	fs.Int(ConfigSurveyThreads, runtime.NumCPU(), "survey games played at once")
	fs.String(ConfigSurveyOutput, "", "write the survey report as yaml to this file")
	fs.Bool(ConfigSurveyRepetition, false, "draw survey games on threefold repetition")
	return fs
}

// Load reads the configuration. args are the program's arguments without
// the program name.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	fs := c.flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("hexstack")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath("$HOME/.hexstack")
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		log.Debug().Msg("no-config-file")
	}
	return nil
}

// Args are the command-line arguments left over after the flags.
func (c *Config) Args() []string {
	return c.args
}

// AdjustableSettings can be changed from the shell with `set`.
var AdjustableSettings = []string{
	ConfigDebug,
	ConfigBotLevel,
	ConfigTTMemoryFraction,
	ConfigSurveySamples,
	ConfigSurveyDepth,
	ConfigSurveyMaxPlies,
	ConfigSurveyThreads,
	ConfigSurveyOutput,
	ConfigSurveyRepetition,
}

// SanitizedSettings returns the adjustable settings and their values.
func (c *Config) SanitizedSettings() map[string]any {
	c.Lock()
	defer c.Unlock()
	out := make(map[string]any, len(AdjustableSettings))
	for _, k := range AdjustableSettings {
		out[k] = c.Get(k)
	}
	return out
}
