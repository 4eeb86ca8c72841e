// Command survey plays bot-vs-bot games after every first move of White
// and reports how each one fared.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/tokonoma/hexstack/automatic"
	"github.com/tokonoma/hexstack/bot"
	"github.com/tokonoma/hexstack/config"
)

const (
	confidence = 95
	// Every game gets two tables of this size.
	tablePower = 16
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	survey, err := automatic.RunOpeningSurvey(ctx, automatic.SurveyConfig{
		Level:           bot.Perfect(cfg.GetInt(config.ConfigSurveyDepth)),
		Samples:         cfg.GetInt(config.ConfigSurveySamples),
		MaxPlies:        cfg.GetInt(config.ConfigSurveyMaxPlies),
		Threads:         cfg.GetInt(config.ConfigSurveyThreads),
		TablePower:      tablePower,
		RepetitionDraws: cfg.GetBool(config.ConfigSurveyRepetition),
	})
	if err != nil {
		log.Error().Err(err).Msg("survey-stopped")
		if survey == nil {
			os.Exit(1)
		}
		// Whatever finished is still worth printing.
	}

	if err := survey.WriteText(os.Stdout, confidence); err != nil {
		log.Error().Err(err).Msg("writing-report")
	}
	if path := cfg.GetString(config.ConfigSurveyOutput); path != "" {
		out, err := survey.YAML(confidence)
		if err != nil {
			log.Fatal().Err(err).Msg("marshalling-report")
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			log.Fatal().Err(err).Msg("writing-report")
		}
		log.Info().Str("path", path).Msg("wrote-report")
	}
}
