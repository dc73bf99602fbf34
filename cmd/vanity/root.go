package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mahdiidarabi/xonly-vanity/pkg/vanity"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// benchmarkFilter switches the command into benchmark mode.
const benchmarkFilter = "benchmark"

type options struct {
	output         string
	maxMatches     uint64
	queuePolicy    string
	queueCapacity  int
	cores          int
	progress       bool
	reportInterval time.Duration
	logFormat      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "vanity <filter> <threadAmount>",
		Short: "Search for secp256k1 keypairs whose x-only public key starts with a hex prefix",
		Long: `Generates random secp256k1 keypairs on <threadAmount> workers and appends every
keypair whose hex x-only public key starts with <filter> to the output file as
"<private key>;<public key>". The search runs until interrupted.

With "benchmark" as filter, <threadAmount> is the number of iterations of a
serial generation and filtering benchmark.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				printUsage(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}
			setupLog(opts.logFormat, cmd.OutOrStdout())

			amount, err := parseThreadAmount(args[1])
			if err != nil {
				return err
			}

			if args[0] == benchmarkFilter {
				return runBenchmark(cmd, opts, amount)
			}
			return runSearch(cmd, opts, args[0], amount)
		},
	}

	cmd.Flags().StringVar(&opts.output, "output", vanity.DefaultOutputFile, "File matching keypairs are appended to")
	cmd.Flags().Uint64Var(&opts.maxMatches, "max-matches", 0, "Stop after this many matches (0 = run until interrupted)")
	cmd.Flags().StringVar(&opts.queuePolicy, "queue-policy", string(vanity.PolicyUnbounded), "Queue policy: 'unbounded', 'block' or 'drop'")
	cmd.Flags().IntVar(&opts.queueCapacity, "queue-capacity", 0, "Queue capacity for the 'block' and 'drop' policies")
	cmd.Flags().IntVar(&opts.cores, "cores", vanity.DefaultProjectedCores, "Core count for the benchmark throughput projection")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a progress bar with the key rate")
	cmd.Flags().DurationVar(&opts.reportInterval, "report-interval", 0, "Log the key rate at this interval (0 = off)")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "console", "Log format: 'json' or 'console'")

	return cmd
}

func printUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: %s <filter> <threadAmount>\n", name)
	fmt.Fprintf(w, "\t Benchmark with %q as filter and threadAmount as the amount of iterations\n", benchmarkFilter)
}

func parseThreadAmount(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid thread amount %q: %w", s, err)
	}
	return uint32(n), nil
}

func setupLog(format string, w io.Writer) {
	if strings.ToLower(format) == "json" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
	}
}
