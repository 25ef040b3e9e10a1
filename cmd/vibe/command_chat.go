package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"vibe/internal/app"
	"vibe/internal/config"
	"vibe/internal/logging"
	"vibe/internal/store"
	"vibe/internal/types"
)

type ChatCommand struct {
	stderr io.Writer
	runUI  func(ctx context.Context, opts app.Options) error
	now    func() time.Time
}

func NewChatCommand(stderr io.Writer, runUI func(ctx context.Context, opts app.Options) error, now func() time.Time) *ChatCommand {
	if now == nil {
		now = time.Now
	}
	return &ChatCommand{
		stderr: stderr,
		runUI:  runUI,
		now:    now,
	}
}

func (c *ChatCommand) Run(args []string) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	file := fs.String("file", "", "markdown transcript to load")
	demo := fs.Int("demo", 0, "number of generated messages to start with")
	configPath := fs.String("config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *demo < 0 {
		return errors.New("--demo must be >= 0")
	}
	if c.runUI == nil {
		return errors.New("ui runner is not configured")
	}

	cfg, err := loadConfig(*configPath, false)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := openUILog(cfg)
	if err != nil {
		return err
	}
	defer closeLog.Close()

	opts, closeStore, err := c.buildOptions(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	messages, err := c.initialMessages(strings.TrimSpace(*file), *demo)
	if err != nil {
		return err
	}
	opts.Messages = messages
	logger.Info("chat_start",
		logging.F("messages", len(messages)),
		logging.F("estimate", opts.EstimateHeight),
		logging.F("buffer", opts.Buffer),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := c.runUI(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func openUILog(cfg config.Config) (logging.Logger, io.Closer, error) {
	path, err := cfg.ResolveLogPath()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.OpenFile(path, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return nil, nil, fmt.Errorf("open ui log: %w", err)
	}
	return logger, closer, nil
}

// buildOptions merges config with the persisted UI preferences. A store that
// cannot be opened is logged and skipped.
func (c *ChatCommand) buildOptions(cfg config.Config, logger logging.Logger) (app.Options, func(), error) {
	opts := app.Options{
		EstimateHeight: cfg.EstimateHeight(),
		Buffer:         cfg.Buffer(),
		Theme:          cfg.Theme(),
		Follow:         cfg.Follow(),
		Timestamps:     cfg.UI.Timestamps,
		Logger:         logger,
		Now:            c.now,
	}
	keybindingsPath, err := cfg.ResolveKeybindingsPath()
	if err != nil {
		return app.Options{}, nil, err
	}
	keybindings, err := app.LoadKeybindings(keybindingsPath)
	if err != nil {
		return app.Options{}, nil, fmt.Errorf("load keybindings %s: %w", keybindingsPath, err)
	}
	opts.Keybindings = keybindings

	noop := func() {}
	storePath, err := cfg.ResolveStorePath()
	if err != nil {
		return app.Options{}, nil, err
	}
	stateStore, err := store.Open(cfg.StoreBackend(), storePath)
	if err != nil {
		logger.Warn("ui_state_store_unavailable", logging.F("path", storePath), logging.F("error", err))
		return opts, noop, nil
	}
	state, err := stateStore.Load(context.Background())
	if err != nil {
		logger.Warn("ui_state_load_failed", logging.F("error", err))
		state = &types.UIState{}
	}
	applyUIState(&opts, state)
	opts.Store = stateStore
	return opts, func() { _ = stateStore.Close() }, nil
}

func applyUIState(opts *app.Options, state *types.UIState) {
	if state == nil {
		return
	}
	switch strings.TrimSpace(state.Theme) {
	case "dark", "light":
		opts.Theme = state.Theme
	}
	opts.Follow = state.FollowOr(opts.Follow)
}

func (c *ChatCommand) initialMessages(file string, demo int) ([]types.Message, error) {
	var messages []types.Message
	if file != "" {
		loaded, err := app.LoadTranscript(file, c.now())
		if err != nil {
			return nil, err
		}
		messages = append(messages, loaded...)
	}
	if demo > 0 {
		messages = append(messages, app.DemoMessages(demo, c.now())...)
	}
	return messages, nil
}
