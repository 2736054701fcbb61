package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/teamfinder/internal/client/config"
	"github.com/dmitrijs2005/teamfinder/internal/logging"
)

// loadConfig is a test seam. config.LoadConfig reads os.Args itself and
// panics on malformed input; the panic is turned into an error here.
var loadConfig = func() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("load config: %v", r)
		}
	}()
	return config.LoadConfig(), nil
}

// Version is reported by --version.
var Version = "dev"

// newAppFn is a test seam for building the App.
var newAppFn = NewApp

// RootOptions holds global state shared by all commands. The flags declared
// on the root command are parsed by the config package; cobra only needs to
// know them for validation and help.
type RootOptions struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	config *config.Config
	logger logging.Logger
}

// app builds the App for a command. The caller closes it.
func (o *RootOptions) app(ctx context.Context) (*App, error) {
	return newAppFn(ctx, o.config, o.logger, o.In, o.Out)
}

// NewRootCommand creates the teamfinder command tree. Without a subcommand
// it starts the interactive shell.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &RootOptions{In: in, Out: out, ErrOut: errOut}

	cmd := &cobra.Command{
		Use:           "teamfinder",
		Short:         "TeamFinder terminal client",
		Long:          "Browse and manage TeamFinder posts and profiles from the terminal.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := logging.New(opts.ErrOut, cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}
			opts.config = cfg
			opts.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), opts)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	var defaults config.Config
	defaults.LoadDefaults()

	pf := cmd.PersistentFlags()
	pf.StringP("config", "c", "", "path to a JSON or YAML config file")
	pf.String("api", defaults.APIBaseURL, "base URL of the TeamFinder API")
	pf.String("db", defaults.DatabasePath, "path to the local session database")
	pf.Duration("ttl", defaults.SessionTTL, "lifetime of the cached authenticated flag")
	pf.Duration("timeout", defaults.RequestTimeout, "per-request timeout")
	pf.Duration("health", defaults.HealthCheckInterval, "health check interval, 0 disables")
	pf.String("log-level", defaults.LogLevel, "log level: debug, info, warn or error")
	pf.String("log-format", defaults.LogFormat, "log format: text, json or zap")

	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewPostsCommand(opts))

	return cmd
}

// Execute runs the command tree and prints a failure the way the shell
// reports errors. It returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := NewRootCommand(in, out, errOut)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "Error: "+userMessage(err))
		return 1
	}
	return 0
}

func runShell(ctx context.Context, opts *RootOptions) error {
	a, err := opts.app(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

// NewShellCommand starts the interactive shell.
func NewShellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), opts)
		},
	}
}
