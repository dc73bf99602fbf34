package main

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mahdiidarabi/xonly-vanity/internal/meter"
	"github.com/mahdiidarabi/xonly-vanity/pkg/vanity"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const progressInterval = 200 * time.Millisecond

func runSearch(cmd *cobra.Command, opts *options, filter string, threads uint32) error {
	ctx := cmd.Context()

	if !vanity.Reachable(filter) {
		log.Warn().Str("filter", filter).Msg("Filter is not a lowercase hex prefix of at most 64 characters, no key will ever match")
	}

	policy, err := vanity.ParseQueuePolicy(opts.queuePolicy)
	if err != nil {
		return err
	}

	cfg := vanity.DefaultSearchConfig()
	cfg.Filter = filter
	cfg.Threads = int(threads)
	cfg.Queue = vanity.QueueConfig{Policy: policy, Capacity: opts.queueCapacity}
	cfg.MaxMatches = opts.maxMatches

	sink, err := vanity.OpenSink(opts.output)
	if err != nil {
		return err
	}

	searcher, err := vanity.NewSearcher(cfg, sink)
	if err != nil {
		sink.Close()
		return err
	}
	searcher.
		WithLogger(log.Logger).
		WithMatchHandler(func(count uint64, rec vanity.MatchRecord) {
			log.Info().Str("pubkey", rec.PublicKey).Msgf("%d calculated keys...", count)
		})

	log.Info().Msgf("Thread amount: %d", threads)

	var bar *meter.BarReporter
	var stops []func()
	if opts.progress {
		bar = meter.NewBarReporter(cmd.ErrOrStderr(), "Searching", "keys/s")
		stops = append(stops, meter.New(searcher.Candidates, progressInterval, bar).Start(ctx))
	}
	if opts.reportInterval > 0 {
		reporter := meter.NewLogReporter(log.Logger, "Throughput")
		stops = append(stops, meter.New(searcher.Candidates, opts.reportInterval, reporter).Start(ctx))
	}

	result, runErr := searcher.Run(ctx)

	for _, stop := range stops {
		stop()
	}
	if bar != nil {
		_ = bar.Close()
		fmt.Fprintln(cmd.ErrOrStderr())
	}

	closeErr := sink.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output file: %w", closeErr)
	}

	log.Info().
		Uint64("matches", result.Matches).
		Uint64("examined", result.Candidates).
		Uint64("generated", result.Generated).
		Uint64("dropped", result.Dropped).
		Int("pending", result.Pending).
		Dur("elapsed", result.Elapsed).
		Str("output", opts.output).
		Msg("Search finished")
	return nil
}

func runBenchmark(cmd *cobra.Command, opts *options, samples uint32) error {
	spin := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	spin.Suffix = fmt.Sprintf(" Benchmarking %d keypairs...", samples)
	spin.Start()

	report, err := benchmark(cmd.Context(), opts, samples)
	spin.Stop()
	if err != nil {
		return err
	}

	printBenchmarkReport(cmd.OutOrStdout(), report)
	return nil
}

func benchmark(ctx context.Context, opts *options, samples uint32) (*vanity.BenchmarkReport, error) {
	return vanity.NewBenchmark(vanity.NewKeySource(vanity.SystemEntropy()), int(samples)).
		WithProjectedCores(opts.cores).
		Run(ctx)
}
