// Local REPL for talking to the persona without Discord. Useful for tuning
// templates: set RANDOM_SEED for reproducible output.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/keshon/marketmind/internal/config"
	"github.com/keshon/marketmind/internal/logging"
	"github.com/keshon/marketmind/internal/market"
	"github.com/keshon/marketmind/internal/mind"
	"github.com/keshon/marketmind/internal/randx"
	"github.com/keshon/marketmind/internal/speech"
	"github.com/keshon/marketmind/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, "")

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randx.NewLocked(seed)

	client := market.NewClient(cfg.MarketAPIURL, log)
	cache := market.NewCache(client, time.Duration(cfg.MarketCacheTTLMs)*time.Millisecond, log)

	registry := speech.NewRegistry()
	conditions := speech.NewConditions()
	speech.RegisterBuiltinConditions(conditions)
	if err := speech.RegisterBuiltinTemplates(registry); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	renderer := speech.NewRenderer(registry, conditions, rng, speech.Options{
		AntiRepeatWindow: cfg.AntiRepeatWindow,
		Logger:           log,
	})

	responder := mind.NewResponder(mind.ResponderDeps{
		Store:    mind.NewStore(nil), // no persistence for the REPL
		Builder:  mind.NewBuilder(cache, rng, cfg.QuestionProbability, log),
		Renderer: renderer,
		Mutator:  speech.NewMutator(rng, speech.DefaultMutatorConfig()),
		Gate:     mind.NewRateGateWith(rate.Limit(100), 100, 0), // REPL answers every line
		Config:   mind.DefaultEngagementConfig(),
		Identity: mind.Identity{PlatformUsername: "marketmind", DisplayName: version.AppName, Platform: "cli"},
		Rng:      rng,
		Logger:   log,
	})

	fmt.Printf("%s %s. Type a message, ctrl-d to quit.\n", version.AppName, version.Version)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		msg := mind.Message{
			Text:        text,
			SenderID:    "local",
			SenderName:  "you",
			RoomID:      "repl",
			IsDM:        true, // always answer in the REPL
			MentionsBot: true,
			Timestamp:   time.Now(),
		}
		reply, ok := responder.Respond(context.Background(), msg)
		if !ok {
			fmt.Println("(staying quiet)")
			continue
		}
		fmt.Println(reply)
	}
	fmt.Println()
}
