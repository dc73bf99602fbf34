// Package vanity searches for secp256k1 keypairs whose x-only public key
// (BIP-340, 32 bytes, lowercase hex) begins with a chosen prefix.
//
// The search is a fan-in pipeline: N generator workers draw scalars from a
// secure entropy source and push keypairs into a single multi-producer,
// single-consumer queue; one collector drains the queue, applies the prefix
// filter and appends every match to an output sink as
// "<private-hex>;<public-hex>\n".
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/xonly-vanity/pkg/vanity"
//
//	sink, err := vanity.OpenSink(vanity.DefaultOutputFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sink.Close()
//
//	cfg := vanity.DefaultSearchConfig()
//	cfg.Filter = "dead"
//	cfg.Threads = 8
//
//	searcher, err := vanity.NewSearcher(cfg, sink)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := searcher.Run(ctx) // runs until ctx is cancelled
//
// # Queue policy
//
// The queue between workers and collector is unbounded by default so that
// workers never wait. Bounded variants are available for memory-constrained
// runs and for tests that need a deterministic slow consumer:
//
//	cfg.Queue = vanity.QueueConfig{Policy: vanity.PolicyBlock, Capacity: 1024}
//
// # Benchmark
//
// Benchmark times key generation and filtering serially on the calling
// goroutine, without writing anything:
//
//	report, err := vanity.NewBenchmark(vanity.NewKeySource(vanity.SystemEntropy()), 1000).Run(ctx)
package vanity
