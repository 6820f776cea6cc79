package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/cli"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/config"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/dispatch"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/intelligence"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/llm"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/session"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(viper.New(), path)
	if err != nil {
		return err
	}

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger, err := newLogger(cfg, interactive())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewZapObserver(logger)
	}
	client, err := llm.NewClient(ctx, cfg.LLM, observer)
	if err != nil {
		return err
	}
	analyzer := intelligence.NewAnalysisService(client,
		intelligence.WithStrictSchema(cfg.LLM.StrictSchema),
		intelligence.WithLogger(logger),
	)

	var dispatcher dispatch.Dispatcher = dispatch.NoopDispatcher{}
	if cfg.Slack.Enabled() {
		dispatcher = dispatch.NewSlackDispatcher(cfg.Slack, logger)
	}

	app := &cli.App{
		Analyzer:   analyzer,
		Dispatcher: dispatcher,
		Config:     cfg,
		Logger:     logger,
		Provider:   analyzer.ProviderName(),
		Version:    version,
		NewSession: func() *session.Session {
			return session.New(session.WithObserver(session.NewZapObserver(logger)))
		},
		IsInteractive: interactive,
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// newLogger writes JSON logs to the configured file. Without one, call
// logs go to stderr only when the TUI is not drawing on the terminal.
func newLogger(cfg config.Config, interactive bool) (*zap.Logger, error) {
	var output string
	switch {
	case cfg.LogFile != "":
		output = cfg.LogFile
	case cfg.LLM.LogCalls && !interactive:
		output = "stderr"
	default:
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if os.Getenv("MAC_DEBUG") != "" {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}
