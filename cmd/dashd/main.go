package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/dashd/internal/clock"
	"github.com/sandeepkv93/dashd/internal/config"
	"github.com/sandeepkv93/dashd/internal/logging"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/persist"
	"github.com/sandeepkv93/dashd/internal/scheduler"
	"github.com/sandeepkv93/dashd/internal/speech"
	"github.com/sandeepkv93/dashd/internal/storage"
	"github.com/sandeepkv93/dashd/internal/todo"
	"github.com/sandeepkv93/dashd/internal/update"
	"github.com/sandeepkv93/dashd/internal/vocab"
	"github.com/sandeepkv93/dashd/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dashd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaultPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	configPath := flag.String("config", defaultPath, "path to config.toml")
	flag.Parse()

	cfg, err := config.LoadOrCreate(*configPath)
	if err != nil {
		return err
	}
	cfg = config.FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, logCloser, err := logging.New(logging.Options{Path: cfg.Log.File, Level: cfg.Log.Level, Prefix: "dashd"})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := context.Background()
	kv, err := storage.OpenSQLite(ctx, cfg.Storage.Path, cfg.Storage.Driver, storage.Options{MaxValueBytes: cfg.Storage.MaxValueBytes})
	if err != nil {
		return err
	}
	defer kv.Close()
	adapter := persist.New(kv, logger)

	board := todo.NewBoard(todo.NewStore(), adapter, logger)
	board.Hydrate(ctx)

	gen, err := vocab.NewGenerator(ctx, vocab.Config{
		Provider: cfg.Vocab.Provider,
		Model:    cfg.Vocab.Model,
		APIKey:   cfg.Vocab.APIKey,
		BaseURL:  cfg.Vocab.BaseURL,
	})
	if err != nil {
		// The dashboard still runs; the vocab panel reports the cause.
		logger.Warn("vocabulary generator unavailable", "provider", cfg.Vocab.Provider, "err", err)
		gen = unavailable(err)
	}
	if c, ok := gen.(io.Closer); ok {
		defer c.Close()
	}
	controller := vocab.NewController(gen, adapter, logger,
		vocab.WithMaxRetries(cfg.Vocab.MaxRetries),
		vocab.WithTimeout(cfg.Vocab.Timeout.Duration),
	)
	controller.Hydrate(ctx)

	clk, err := clock.New(cfg.Clock.Timezone, cfg.Clock.Use24Hour)
	if err != nil {
		return err
	}

	speechClient := speech.NewClient(speech.Config{
		BaseURL:      cfg.Speech.BaseURL,
		FallbackBase: cfg.Speech.FallbackBase,
		Timeout:      cfg.Speech.Timeout.Duration,
	}, logger)
	speaker := speech.NewSpeaker(speechClient, cfg.Speech.Player, cfg.Speech.Synthesizer, logger)

	engine := scheduler.NewEngine(cfg.Scheduler.Buffer)
	engine.Start()
	defer engine.Stop()

	lang, _ := model.ParseLanguage(cfg.Vocab.Language)
	sortBy, _ := model.ParseSortOption(cfg.Todo.DefaultSort)
	status, _ := model.ParseStatusFilter(cfg.Todo.DefaultFilter)

	m := update.NewModel(update.Services{
		Board: board,
		Vocab: controller,
		Weather: weather.NewClient(weather.Config{
			APIKey:  cfg.Weather.APIKey,
			BaseURL: cfg.Weather.BaseURL,
		}),
		Speaker:   speaker,
		Clock:     clk,
		Scheduler: engine,
		Logger:    logger,
	}, update.Settings{
		City:     cfg.Weather.City,
		Refresh:  cfg.Weather.Refresh.Duration,
		Language: lang,
		Sort:     sortBy,
		Filter:   todo.Filter{Status: status, ShowCompleted: cfg.Todo.ShowCompleted},
		Keys:     cfg.Keys,
	})

	logger.Info("starting", "config", *configPath, "db", cfg.Storage.Path, "driver", cfg.Storage.Driver)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	logShutdown(logger, engine)
	return nil
}

func unavailable(cause error) vocab.Generator {
	return vocab.GeneratorFunc(func(context.Context, model.Language, []string) (model.WordPair, error) {
		return model.WordPair{}, cause
	})
}

func logShutdown(logger *log.Logger, engine *scheduler.Engine) {
	if dropped := engine.Dropped(); dropped > 0 {
		logger.Warn("scheduler dropped jobs", "count", dropped)
	}
	logger.Info("stopped")
}
