package meter

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingReporter struct {
	mu      sync.Mutex
	samples []Sample
}

func (r *recordingReporter) Report(s Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, s)
}

func (r *recordingReporter) snapshot() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.samples...)
}

func TestMeter_DeltasSumToTotal(t *testing.T) {
	var counter atomic.Uint64
	rec := &recordingReporter{}
	m := New(counter.Load, 10*time.Millisecond, rec)

	ctx, cancel := context.WithCancel(context.Background())
	stop := m.Start(ctx)
	defer cancel()

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		counter.Add(7)
		time.Sleep(time.Millisecond)
	}
	stop()

	samples := rec.snapshot()
	if len(samples) < 2 {
		t.Fatalf("Expected several samples, got %d", len(samples))
	}

	sum := samples[0].Total - samples[0].Delta
	for i, s := range samples {
		sum += s.Delta
		if s.Total != sum {
			t.Fatalf("Sample %d: total %d != running sum %d", i, s.Total, sum)
		}
		if s.Elapsed <= 0 {
			t.Errorf("Sample %d: non-positive elapsed %s", i, s.Elapsed)
		}
	}
}

func TestMeter_StopsOnCancel(t *testing.T) {
	m := New(func() uint64 { return 0 }, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Meter did not stop")
	}
}

func TestSample_Rate(t *testing.T) {
	s := Sample{Delta: 500, Elapsed: 250 * time.Millisecond}
	if s.Rate() != 2000 {
		t.Errorf("Expected 2000/s, got %f", s.Rate())
	}

	if (Sample{Delta: 5}).Rate() != 0 {
		t.Error("Zero elapsed should give zero rate")
	}
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(zerolog.New(&buf), "Throughput")

	r.Report(Sample{Total: 1000, Delta: 100, Elapsed: time.Second})

	out := buf.String()
	for _, want := range []string{`"total":1000`, `"delta":100`, `"per_sec":100`, `"message":"Throughput"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in %s", want, out)
		}
	}
}

func TestBarReporter(t *testing.T) {
	r := NewBarReporter(io.Discard, "searching", "keys/s")

	r.Report(Sample{Total: 10, Delta: 10, Elapsed: time.Second})
	r.Report(Sample{Total: 25, Delta: 15, Elapsed: time.Second})

	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
