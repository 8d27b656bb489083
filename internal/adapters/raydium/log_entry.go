package raydium

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedLogEntry is returned when the initialization log line cannot be decoded
var ErrMalformedLogEntry = errors.New("malformed init log entry")

// relaxedKey matches an unquoted object key such as `{nonce:` or `, open_time :`
var relaxedKey = regexp.MustCompile(`([{,])\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*:`)

// InitLogEntry is the object printed by the pool program when a pool is initialized
type InitLogEntry struct {
	Nonce          uint64 `json:"nonce"`
	OpenTime       uint64 `json:"open_time"`
	InitPcAmount   uint64 `json:"init_pc_amount"`
	InitCoinAmount uint64 `json:"init_coin_amount"`
}

// FindLogEntry returns the first log line containing needle
func FindLogEntry(needle string, logs []string) (string, bool) {
	for _, line := range logs {
		if strings.Contains(line, needle) {
			return line, true
		}
	}
	return "", false
}

// DecodeInitLogEntry decodes the relaxed JSON object of an initialization log line,
// for example `Program log: initialize2: InitializeInstruction2 { nonce: 254, open_time: 0, ... }`.
func DecodeInitLogEntry(line string) (*InitLogEntry, error) {
	start := strings.IndexByte(line, '{')
	if start < 0 {
		return nil, fmt.Errorf("%w: no object in %q", ErrMalformedLogEntry, line)
	}

	quoted := relaxedKey.ReplaceAllString(line[start:], `$1"$2":`)

	var entry InitLogEntry
	if err := json.Unmarshal([]byte(quoted), &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLogEntry, err)
	}
	return &entry, nil
}
