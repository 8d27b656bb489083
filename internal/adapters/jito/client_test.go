package jito

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/domain"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

type bundleRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	Path   string            `json:"-"`
	Auth   string            `json:"-"`
}

func newBlockEngine(t *testing.T, respond func(req bundleRequest) string) (*httptest.Server, chan bundleRequest) {
	t.Helper()
	requests := make(chan bundleRequest, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req bundleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		req.Path = r.URL.Path
		req.Auth = r.Header.Get("x-jito-auth")
		requests <- req

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(respond(req)))
	}))
	t.Cleanup(server.Close)
	return server, requests
}

func signedTransfer(t *testing.T) *solana.Transaction {
	t.Helper()
	wallet := solana.NewWallet()
	payer := wallet.PublicKey()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1000, payer, solana.NewWallet().PublicKey()).Build()},
		solana.Hash{9},
		solana.TransactionPayer(payer),
	)
	require.NoError(t, err)
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer) {
			return &wallet.PrivateKey
		}
		return nil
	})
	require.NoError(t, err)
	return tx
}

func newTestClient(url, encoding, auth string) *Client {
	cfg := &config.Config{
		Relay: config.RelayConfig{
			BlockEngineURLs: []string{url + "/", "https://unused.example"},
			AuthToken:       auth,
			Encoding:        encoding,
			Timeout:         2 * time.Second,
		},
	}
	return NewClient(cfg, logger.New("error", "test"))
}

func TestClient_SendBundle_Base64(t *testing.T) {
	server, requests := newBlockEngine(t, func(req bundleRequest) string {
		return `{"jsonrpc":"2.0","result":"bundle-abc","id":` + string(req.ID) + `}`
	})
	client := newTestClient(server.URL, config.EncodingBase64, "secret-token")

	tx := signedTransfer(t)
	id, err := client.SendBundle(context.Background(), []*solana.Transaction{tx})
	require.NoError(t, err)
	assert.Equal(t, "bundle-abc", id)

	req := <-requests
	assert.Equal(t, "/api/v1/bundles", req.Path)
	assert.Equal(t, "secret-token", req.Auth)
	assert.Equal(t, "sendBundle", req.Method)
	require.Len(t, req.Params, 2)

	var encoded []string
	require.NoError(t, json.Unmarshal(req.Params[0], &encoded))
	require.Len(t, encoded, 1)

	raw, err := base64.StdEncoding.DecodeString(encoded[0])
	require.NoError(t, err)
	expected, err := tx.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, expected, raw)

	var opts map[string]string
	require.NoError(t, json.Unmarshal(req.Params[1], &opts))
	assert.Equal(t, "base64", opts["encoding"])
}

func TestClient_SendBundle_Base58(t *testing.T) {
	server, requests := newBlockEngine(t, func(req bundleRequest) string {
		return `{"jsonrpc":"2.0","result":"bundle-58","id":` + string(req.ID) + `}`
	})
	client := newTestClient(server.URL, config.EncodingBase58, "")

	txs := []*solana.Transaction{signedTransfer(t), signedTransfer(t)}
	_, err := client.SendBundle(context.Background(), txs)
	require.NoError(t, err)

	req := <-requests
	assert.Empty(t, req.Auth)

	var encoded []string
	require.NoError(t, json.Unmarshal(req.Params[0], &encoded))
	require.Len(t, encoded, 2)

	for i, value := range encoded {
		raw, err := base58.Decode(value)
		require.NoError(t, err)
		expected, err := txs[i].MarshalBinary()
		require.NoError(t, err)
		assert.Equal(t, expected, raw)
	}
}

func TestClient_SendBundle_NoConnectedLeader(t *testing.T) {
	server, _ := newBlockEngine(t, func(req bundleRequest) string {
		return `{"jsonrpc":"2.0","error":{"code":-32000,"message":"Bundle Dropped, no connected leader up soon"},"id":` + string(req.ID) + `}`
	})
	client := newTestClient(server.URL, config.EncodingBase64, "")

	_, err := client.SendBundle(context.Background(), []*solana.Transaction{signedTransfer(t)})
	assert.ErrorIs(t, err, ErrNoConnectedLeader)
}

func TestClient_SendBundle_OtherError(t *testing.T) {
	server, _ := newBlockEngine(t, func(req bundleRequest) string {
		return `{"jsonrpc":"2.0","error":{"code":-32602,"message":"bundle contains an expired blockhash"},"id":` + string(req.ID) + `}`
	})
	client := newTestClient(server.URL, config.EncodingBase64, "")

	_, err := client.SendBundle(context.Background(), []*solana.Transaction{signedTransfer(t)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoConnectedLeader)
	assert.Contains(t, err.Error(), "expired blockhash")
}

func TestClient_SendBundle_RejectsInvalidBundles(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", config.EncodingBase64, "")

	_, err := client.SendBundle(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidBundle)

	oversized := make([]*solana.Transaction, MaxBundleTransactions+1)
	_, err = client.SendBundle(context.Background(), oversized)
	assert.ErrorIs(t, err, ErrInvalidBundle)
}

func newStatusEngine(t *testing.T, responses ...string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req bundleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "getBundleStatuses", req.Method)

		var ids []string
		require.Len(t, req.Params, 1)
		require.NoError(t, json.Unmarshal(req.Params[0], &ids))
		assert.Equal(t, []string{"bundle-xyz"}, ids)

		n := int(atomic.AddInt32(&calls, 1)) - 1
		if n >= len(responses) {
			n = len(responses) - 1
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0",` + responses[n] + `,"id":` + string(req.ID) + `}`))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newStatusClient(url string, timeout time.Duration) *Client {
	cfg := &config.Config{
		Relay: config.RelayConfig{
			BlockEngineURLs:    []string{url},
			Timeout:            time.Second,
			StatusTimeout:      timeout,
			StatusPollInterval: 10 * time.Millisecond,
		},
	}
	return NewClient(cfg, logger.New("error", "test"))
}

const (
	notLanded    = `"result":{"context":{"slot":100},"value":[null]}`
	landed       = `"result":{"context":{"slot":130},"value":[{"bundle_id":"bundle-xyz","transactions":["sig"],"slot":120,"confirmation_status":"confirmed","err":{"Ok":null}}]}`
	landedFailed = `"result":{"context":{"slot":130},"value":[{"bundle_id":"bundle-xyz","transactions":["sig"],"slot":121,"confirmation_status":"processed","err":{"Err":{"InstructionError":[1,{"Custom":30}]}}}]}`
)

func TestClient_AwaitBundleStatus(t *testing.T) {
	tests := []struct {
		name      string
		responses []string
		timeout   time.Duration
		want      domain.BundleOutcome
		wantErr   bool
	}{
		{
			name:      "lands after a few polls",
			responses: []string{notLanded, notLanded, landed},
			timeout:   2 * time.Second,
			want:      domain.BundleOutcome{Status: domain.BundleStatusLanded, Slot: 120},
		},
		{
			name:      "executed with an error",
			responses: []string{landedFailed},
			timeout:   2 * time.Second,
			want: domain.BundleOutcome{
				Status: domain.BundleStatusFailed,
				Slot:   121,
				Error:  `{"Err":{"InstructionError":[1,{"Custom":30}]}}`,
			},
		},
		{
			name:      "never lands",
			responses: []string{notLanded},
			timeout:   100 * time.Millisecond,
			want:      domain.BundleOutcome{Status: domain.BundleStatusPending},
		},
		{
			name:      "block engine keeps failing",
			responses: []string{`"error":{"code":-32603,"message":"internal error"}`},
			timeout:   100 * time.Millisecond,
			want:      domain.BundleOutcome{Status: domain.BundleStatusPending},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, calls := newStatusEngine(t, tt.responses...)
			client := newStatusClient(server.URL, tt.timeout)

			outcome, err := client.AwaitBundleStatus(context.Background(), "bundle-xyz")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, outcome)
			assert.Equal(t, tt.want, *outcome)
			assert.GreaterOrEqual(t, atomic.LoadInt32(calls), int32(1))
		})
	}
}

func TestBundleStatusEntry_Failed(t *testing.T) {
	assert.False(t, (&BundleStatusEntry{}).Failed())
	assert.False(t, (&BundleStatusEntry{Err: json.RawMessage(`null`)}).Failed())
	assert.False(t, (&BundleStatusEntry{Err: json.RawMessage(`{"Ok":null}`)}).Failed())
	assert.True(t, (&BundleStatusEntry{Err: json.RawMessage(`{"Err":"AccountInUse"}`)}).Failed())
}
