package raydium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInitLogEntry(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *InitLogEntry
		wantErr bool
	}{
		{
			name: "compact relaxed object",
			line: "{nonce:1,open_time:100,init_pc_amount:5,init_coin_amount:7}",
			want: &InitLogEntry{Nonce: 1, OpenTime: 100, InitPcAmount: 5, InitCoinAmount: 7},
		},
		{
			name: "program log prefix and spacing",
			line: "Program log: initialize2: InitializeInstruction2 { nonce: 254, open_time: 1700000000, init_pc_amount: 5000000000, init_coin_amount: 1000000000000 }",
			want: &InitLogEntry{Nonce: 254, OpenTime: 1700000000, InitPcAmount: 5000000000, InitCoinAmount: 1000000000000},
		},
		{
			name: "amounts above float precision",
			line: "{nonce:2,open_time:0,init_pc_amount:18446744073709551615,init_coin_amount:9007199254740993}",
			want: &InitLogEntry{Nonce: 2, InitPcAmount: 18446744073709551615, InitCoinAmount: 9007199254740993},
		},
		{
			name:    "no object",
			line:    "Program log: init_pc_amount missing braces",
			wantErr: true,
		},
		{
			name:    "truncated object",
			line:    "{nonce:1,open_time:",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := DecodeInitLogEntry(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedLogEntry)
				assert.Nil(t, entry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry)
		})
	}
}

func TestFindLogEntry(t *testing.T) {
	logs := []string{
		"Program 675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8 invoke [1]",
		"Program log: initialize2: InitializeInstruction2 { nonce: 254, open_time: 0, init_pc_amount: 1, init_coin_amount: 2 }",
		"Program log: init_pc_amount again",
	}

	line, ok := FindLogEntry(InitLogMarker, logs)
	require.True(t, ok)
	assert.Equal(t, logs[1], line)

	_, ok = FindLogEntry(InitLogMarker, logs[:1])
	assert.False(t, ok)

	_, ok = FindLogEntry(InitLogMarker, nil)
	assert.False(t, ok)
}
