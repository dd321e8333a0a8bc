package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keshon/marketmind/internal/config"
	"github.com/keshon/marketmind/internal/discord"
	"github.com/keshon/marketmind/internal/logging"
	"github.com/keshon/marketmind/internal/market"
	"github.com/keshon/marketmind/internal/mind"
	"github.com/keshon/marketmind/internal/randx"
	"github.com/keshon/marketmind/internal/speech"
	"github.com/keshon/marketmind/internal/storage"
	"github.com/keshon/marketmind/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("version", version.Version).Msgf("starting %s", version.AppName)

	if cfg.DiscordToken == "" {
		log.Fatal().Msg("DISCORD_TOKEN is not set")
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer store.Close()

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Discord handlers run on their own goroutines and this one rng feeds
	// the builder, renderer, mutator and engagement score.
	rng := randx.NewLocked(seed)

	client := market.NewClient(cfg.MarketAPIURL, log.With().Str("component", "market").Logger())
	cache := market.NewCache(client, time.Duration(cfg.MarketCacheTTLMs)*time.Millisecond,
		log.With().Str("component", "market").Logger())

	registry := speech.NewRegistry()
	conditions := speech.NewConditions()
	speech.RegisterBuiltinConditions(conditions)
	if err := speech.RegisterBuiltinTemplates(registry); err != nil {
		log.Fatal().Err(err).Msg("register templates")
	}
	renderer := speech.NewRenderer(registry, conditions, rng, speech.Options{
		AntiRepeatWindow: cfg.AntiRepeatWindow,
		Logger:           log.With().Str("component", "speech").Logger(),
	})

	engCfg := mind.DefaultEngagementConfig()
	engCfg.ResponseThreshold = cfg.ResponseThreshold

	responder := mind.NewResponder(mind.ResponderDeps{
		Store:    mind.NewStore(store),
		Builder:  mind.NewBuilder(cache, rng, cfg.QuestionProbability, log.With().Str("component", "mind").Logger()),
		Renderer: renderer,
		Mutator:  speech.NewMutator(rng, speech.DefaultMutatorConfig()),
		Config:   engCfg,
		Rng:      rng,
		Logger:   log.With().Str("component", "mind").Logger(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot := discord.NewBot(cfg, responder, log.With().Str("component", "discord").Logger())
	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Msgf("received signal %s, shutting down", s)
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("discord bot error")
		}
	}
}
