package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	tbapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/AlvesR0/rss-telegram-bot/pkg/bot"
	"github.com/AlvesR0/rss-telegram-bot/pkg/config"
	"github.com/AlvesR0/rss-telegram-bot/pkg/feed"
	"github.com/AlvesR0/rss-telegram-bot/pkg/scheduler"
	"github.com/AlvesR0/rss-telegram-bot/pkg/store"
	"github.com/AlvesR0/rss-telegram-bot/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	lgr.Printf("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// the token goes into every polling URL, keep it out of the logs
	setupLog(opts.Debug, opts.NoColor, cfg.Telegram.Token)

	lgr.Printf("[INFO] starting rssbot version %s", revision)

	st, closeStore, err := makeStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer closeStore()

	api, err := tbapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	lgr.Printf("[INFO] authorized as @%s", api.Self.UserName)

	fetcher := feed.NewFetcher(cfg.FetchTimeout(), cfg.Fetch.UserAgent)

	// scheduler and bot reference each other, bind the notifier late
	var tgBot *bot.Bot
	sched := scheduler.New(st, fetcher, notifierFunc(func(ctx context.Context, chatID int64, text string) error {
		return tgBot.Send(ctx, chatID, text)
	}), cfg.UpdateInterval())
	tgBot = bot.New(api, st, fetcher, sched)

	listen, timeout := cfg.GetServerConfig()
	srv := server.New(server.Config{
		Listen:  listen,
		Timeout: timeout,
		Version: revision,
		Debug:   opts.Debug,
	}, st, sched)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Run(gctx) })
	g.Go(func() error { return tgBot.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })

	return g.Wait()
}

// notifierFunc adapts a function to the scheduler's notifier interface.
type notifierFunc func(ctx context.Context, chatID int64, text string) error

// Send calls the wrapped function.
func (f notifierFunc) Send(ctx context.Context, chatID int64, text string) error {
	return f(ctx, chatID, text)
}

// makeStore builds the record store selected by the config. The returned
// closer is a no-op for the files backend.
func makeStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Storage.Type {
	case config.StorageSQLite:
		s, err := store.NewSQLStore(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				lgr.Printf("[WARN] failed to close store: %v", err)
			}
		}, nil
	default:
		s, err := store.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
