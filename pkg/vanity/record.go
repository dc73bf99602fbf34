package vanity

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const recordSeparator = ";"

// MatchRecord is one persisted match: the encoded private scalar and its
// encoded x-only public key.
type MatchRecord struct {
	PrivateKey string
	PublicKey  string
}

// Line renders the record as written to the output sink, newline included.
func (r MatchRecord) Line() string {
	return r.PrivateKey + recordSeparator + r.PublicKey + "\n"
}

// ParseRecord parses one output line. A trailing "\n" or "\r\n" is accepted.
// Both fields must be 64 characters of lowercase hex, as the sink writes them.
func ParseRecord(line string) (MatchRecord, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.Split(line, recordSeparator)
	if len(parts) != 2 {
		return MatchRecord{}, fmt.Errorf("%w: expected 2 fields, got %d", ErrMalformedRecord, len(parts))
	}
	for _, field := range parts {
		if len(field) != EncodedKeyLen {
			return MatchRecord{}, fmt.Errorf("%w: field %q is not %d characters", ErrMalformedRecord, field, EncodedKeyLen)
		}
		if !lowerHex(field) {
			return MatchRecord{}, fmt.Errorf("%w: field %q is not lowercase hex", ErrMalformedRecord, field)
		}
	}
	return MatchRecord{PrivateKey: parts[0], PublicKey: parts[1]}, nil
}

// ReadRecords parses every line of r. Blank lines are skipped.
func ReadRecords(r io.Reader) ([]MatchRecord, error) {
	var records []MatchRecord
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		rec, err := ParseRecord(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// Verify re-derives the public key from the stored private key and checks it
// against the stored public key and the filter.
func (r MatchRecord) Verify(filter string) error {
	privBytes, err := hex.DecodeString(r.PrivateKey)
	if err != nil || len(privBytes) != 32 {
		return fmt.Errorf("%w: bad private key %q", ErrMalformedRecord, r.PrivateKey)
	}

	derived := NewKeypair(secp256k1.PrivKeyFromBytes(privBytes)).EncodedPublicKey()
	if derived != r.PublicKey {
		return fmt.Errorf("%w: private key derives %s, record has %s", ErrRecordMismatch, derived, r.PublicKey)
	}
	if !Matches(r.PublicKey, filter) {
		return fmt.Errorf("%w: %s does not start with %q", ErrRecordMismatch, r.PublicKey, filter)
	}
	return nil
}
