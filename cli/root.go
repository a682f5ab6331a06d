package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"readme_gen/apperr"
	"readme_gen/generator"
)

// app carries the process edges so tests can replace them.
type app struct {
	stdout io.Writer
	stderr io.Writer

	newGenerator func(generator.Settings) (*generator.Generator, error)
}

func defaultApp() *app {
	return &app{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		newGenerator: generator.New,
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], version, defaultApp())
}

func run(ctx context.Context, args []string, version string, a *app) int {
	cmd := newRootCmd(version, a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := cmd.ExecuteContext(ctx)
	return a.report(err)
}

type rootOptions struct {
	output   string
	dryRun   bool
	format   string
	maxChars int
	verbose  bool
}

func newRootCmd(version string, a *app) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "readme-gen [path]",
		Short: "Generate a README for a project with an LLM",
		Long: `readme-gen scans a project directory, builds a bounded excerpt of its source files
and asks one LLM provider (anthropic, openai, google or ollama) to write a README.

Use --dry-run to see exactly what would be sent without contacting any provider.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return apperr.Usage("expected at most one path argument")
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			setupLogging(a.stderr, opts.verbose || os.Getenv("DEBUG") == "1")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, opts, args)
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperr.Usage(err.Error())
	})

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the README to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the context that would be sent and exit")
	cmd.Flags().StringVar(&opts.format, "format", "markdown", "output format: markdown or html")
	cmd.Flags().IntVar(&opts.maxChars, "max-chars", 0, "context size ceiling in characters")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logs")

	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newProvidersCmd(a))
	return cmd
}

func setupLogging(w io.Writer, debug bool) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Str("run", uuid.New().String()[:8]).
		Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
