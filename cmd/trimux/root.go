package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trimux/trimux/internal/config"
)

const (
	appName    = "trimux"
	appVersion = "0.1.0"
)

// globalOptions carries the persistent flag values shared by every
// subcommand.
type globalOptions struct {
	input         string
	configPath    string
	logDir        string
	noLog         bool
	verbose       bool
	jsonOutput    bool
	assumeYes     bool
	decodeTimeout int
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Stream cleanup planner for media libraries",
		Long: appName + ` inspects media files, plans which audio and subtitle
streams to keep, drop, or synthesize under an English-surround policy,
and executes the plan only after interactive review and validation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.input, "input", "i", "", "Directory containing media files")
	pf.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	pf.StringVar(&opts.logDir, "log-dir", "", "Log directory (defaults to INPUT/logs)")
	pf.BoolVar(&opts.noLog, "no-log", false, "Disable log file creation")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&opts.jsonOutput, "json", false, "Emit NDJSON events instead of styled output")
	pf.BoolVarP(&opts.assumeYes, "yes", "y", false, "Answer yes to every decision (unattended mode)")
	pf.IntVar(&opts.decodeTimeout, "decode-timeout", 0,
		fmt.Sprintf("Decode test timeout in seconds (default %d)", config.DefaultDecodeTimeoutSecs))

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newPlanCommand(opts))
	rootCmd.AddCommand(newInspectCommand(opts))
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// buildConfig resolves flags and the optional config file into a
// validated Config. Flags override file values.
func (o *globalOptions) buildConfig() (*config.Config, error) {
	if o.input == "" {
		return nil, config.ErrMissingInput
	}
	inputDir, err := filepath.Abs(o.input)
	if err != nil {
		return nil, fmt.Errorf("invalid input path: %w", err)
	}

	cfg := config.NewConfig(inputDir)

	path := o.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}
	if path != "" {
		if err := cfg.LoadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if o.logDir != "" {
		cfg.LogDir = o.logDir
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(inputDir, "logs")
	}
	if o.decodeTimeout > 0 {
		cfg.DecodeTimeoutSecs = o.decodeTimeout
	}
	cfg.AssumeYes = o.assumeYes
	cfg.JSONOutput = o.jsonOutput
	cfg.Verbose = o.verbose
	cfg.NoLog = o.noLog

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print a sample configuration file",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(config.SampleConfig())
		},
	}
}
