package vanity

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// failingEntropy is an entropy source that always errors.
type failingEntropy struct{}

func (failingEntropy) Read(p []byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

// limitedEntropy serves a fixed number of reads from crypto/rand and then
// fails, remembering when the first failure happened.
type limitedEntropy struct {
	remaining atomic.Int64
	failedAt  atomic.Pointer[time.Time]
}

func newLimitedEntropy(reads int64) *limitedEntropy {
	e := &limitedEntropy{}
	e.remaining.Store(reads)
	return e
}

func (e *limitedEntropy) Read(p []byte) (int, error) {
	if e.remaining.Add(-1) < 0 {
		now := time.Now()
		e.failedAt.CompareAndSwap(nil, &now)
		return 0, errors.New("entropy exhausted")
	}
	return rand.Read(p)
}

// slowSink delays every write and records when each write started.
type slowSink struct {
	delay time.Duration

	mu     sync.Mutex
	starts []time.Time
}

func (s *slowSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	s.starts = append(s.starts, time.Now())
	s.mu.Unlock()
	time.Sleep(s.delay)
	return len(p), nil
}

// writesAfter returns how many writes started after t.
func (s *slowSink) writesAfter(t time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, start := range s.starts {
		if start.After(t) {
			n++
		}
	}
	return n
}

// keypairFromHex builds a keypair from a 32-byte hex scalar.
func keypairFromHex(t *testing.T, s string) Keypair {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("Failed to decode scalar %q: %v", s, err)
	}
	return NewKeypair(secp256k1.PrivKeyFromBytes(b))
}

// generateKeypairs returns n keypairs from the system entropy source.
func generateKeypairs(t *testing.T, n int) []Keypair {
	t.Helper()
	source := NewKeySource(SystemEntropy())
	out := make([]Keypair, n)
	for i := range out {
		kp, err := source.Generate()
		if err != nil {
			t.Fatalf("Failed to generate keypair: %v", err)
		}
		out[i] = kp
	}
	return out
}

// readLines returns the lines of a file without their trailing newline.
func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return lines
}

// isLowerHex reports whether s is non-empty lowercase hex.
func isLowerHex(s string) bool {
	return s != "" && strings.Trim(s, "0123456789abcdef") == ""
}
