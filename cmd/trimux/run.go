package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trimux/trimux/internal/discovery"
	"github.com/trimux/trimux/internal/logging"
	"github.com/trimux/trimux/internal/processing"
	"github.com/trimux/trimux/internal/prompt"
	"github.com/trimux/trimux/internal/reporter"
	"github.com/trimux/trimux/internal/util"
)

func newRunCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Plan, review, and execute stream cleanup for a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(opts)
		},
	}
}

func executeRun(opts *globalOptions) error {
	cfg, err := opts.buildConfig()
	if err != nil {
		return err
	}

	// One run per directory; a second invocation must not race the
	// accept/replace step.
	lock, err := util.AcquireDirLock(cfg.InputDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	logger, err := logging.Setup(cfg.LogDir, cfg.Verbose, cfg.NoLog)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	result, err := discovery.FindMediaFilesWithLogging(cfg.InputDir, logger)
	if err != nil {
		return err
	}

	var rep reporter.Reporter
	if cfg.JSONOutput {
		rep = reporter.NewJSONReporter()
	} else {
		rep = reporter.NewTerminalReporter(cfg.Verbose)
	}

	decider := prompt.New(cfg.AssumeYes)

	controller := processing.NewController(
		cfg,
		processing.DefaultProber{},
		processing.DefaultTranscoder{},
		processing.DefaultValidator{Cfg: cfg},
		processing.DefaultInspector{},
		decider,
		rep,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	_, err = processing.ProcessFiles(ctx, controller, result.Files)
	return err
}
