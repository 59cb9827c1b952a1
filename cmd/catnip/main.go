package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/xonecas/catnip/internal/chat"
	"github.com/xonecas/catnip/internal/config"
	"github.com/xonecas/catnip/internal/provider"
	"github.com/xonecas/catnip/internal/store"
	"github.com/xonecas/catnip/internal/tui"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version and exit")
		configPath  = flag.String("config", "config.toml", "Path to config file")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("Catnip %s\n", Version)
		os.Exit(0)
	}

	if err := initLogging(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	log.Info().Str("version", Version).Msg("Starting Catnip")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	s, err := store.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer s.Close()

	conversations := chat.NewList()
	restored, err := s.LoadConversations()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load saved conversations")
	} else {
		for _, conv := range restored {
			conversations.Add(conv)
		}
	}
	log.Debug().Int("conversations", conversations.Len()).Msg("History restored")

	providers := initProviders(cfg)
	log.Debug().Int("providers", len(providers.List())).Msg("Providers initialized")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	model := tui.New(cfg, providers, conversations)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-sigCh
		log.Info().Msg("Received shutdown signal")
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.Fatal().Err(err).Msg("TUI error")
	}

	if err := s.SaveConversations(conversations.All()); err != nil {
		log.Warn().Err(err).Msg("Failed to save conversations on shutdown")
	}

	log.Info().Msg("Catnip shutdown complete")
}

func initLogging(debug bool) error {
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	// Truncate on startup; the TUI owns stdout/stderr.
	logPath := filepath.Join(dataDir, "catnip.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = zerolog.New(logFile).With().Timestamp().Logger()

	return nil
}

// initProviders registers one OpenAI-compatible provider per configured
// entry that has a resolvable API key.
func initProviders(cfg *config.Config) *provider.Registry {
	registry := provider.NewRegistry()

	names := make([]string, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pc := cfg.Providers[name]
		apiKey := pc.ResolveAPIKey()
		if apiKey == "" {
			log.Debug().Str("provider", name).Msg("Skipping provider without API key")
			continue
		}

		var limiter *rate.Limiter
		if pc.RateLimit > 0 {
			burst := pc.RateBurst
			if burst < 1 {
				burst = 1
			}
			limiter = rate.NewLimiter(rate.Limit(pc.RateLimit), burst)
		}

		registry.Register(provider.NewOpenAICompatible(name, pc.Endpoint, apiKey, pc.Models, limiter))
	}

	return registry
}
