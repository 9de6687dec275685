package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"branchscan/internal/chrono"
	"branchscan/internal/telemetry"
	"branchscan/lib/configutil"
	"branchscan/lib/restyutil"
	libtelemetry "branchscan/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	dbTarget   *string
	dumpHttp   *string
)

// loaded by the root command before any subcommand runs
var (
	config Config
	tel    telemetry.API = telemetry.SlogAPI{}
	clock  chrono.TimeAPI = chrono.NewStandardTime()
)

func init() {
	flags := rootCmd.PersistentFlags()
	configPath = flags.String("config", "branchscan.json5", "The config file to read, a .local variant next to it is merged over it.")
	verbose = flags.BoolP("verbose", "v", false, "Log debug output.")
	dbTarget = flags.String("db", "", "An archive to record runs to, a sqlite file or a libsql:// url.")
	dumpHttp = flags.String("dump-http", "", "Write every HTTP request and response to this directory.")
}

var rootCmd = &cobra.Command{
	Use:           "branchscan",
	Short:         "branchscan scrapes restaurant locations into CSV tables and charts them.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		libtelemetry.InitSlog(*verbose)

		cfg, err := configutil.ReadWithDefaults(*configPath, defaultConfig())
		if err != nil {
			return fmt.Errorf("read config %s: %w", *configPath, err)
		}
		config = cfg
		if *dbTarget == "" {
			*dbTarget = config.Database
		}

		err = libtelemetry.SetupFromEnv(cmd.Context(), "branchscan")
		if err != nil {
			slog.Warn("failed to setup telemetry", "err", err)
		}
		return nil
	},
}

// dumpOutput returns where to write HTTP dumps, nil when --dump-http is unset.
func dumpOutput() (restyutil.InstrumentOutput, error) {
	if *dumpHttp == "" {
		return nil, nil
	}
	out, err := restyutil.NewFilesystemOutput(*dumpHttp)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// shutdownTelemetry flushes spans and metrics, cobra skips
// PersistentPostRun when a command fails so it is called after every run.
var shutdownTelemetry = func() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := libtelemetry.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}
}

// run executes the root command and returns the process exit code.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	err := rootCmd.ExecuteContext(ctx)
	shutdownTelemetry()
	if err == nil {
		return 0
	}
	var noData noDataError
	if errors.As(err, &noData) {
		fmt.Fprintln(stdout, noData.message)
		return 1
	}
	fmt.Fprintln(stderr, err)
	return 1
}

func ExecuteContext(ctx context.Context) {
	code := run(ctx, os.Stdout, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}
