package solana

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supesu/raydium-sniper/internal/adapters/raydium/raydiumtest"
	"github.com/supesu/raydium-sniper/pkg/config"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newRPCServer answers every JSON-RPC method with the raw result registered for it
func newRPCServer(t *testing.T, results map[string]string) (*httptest.Server, *[]rpcRequest) {
	t.Helper()
	var requests []rpcRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		w.Header().Set("Content-Type", "application/json")
		result, ok := results[req.Method]
		if !ok {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-32601,"message":"method not found"},"id":` + string(req.ID) + `}`))
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":` + result + `,"id":` + string(req.ID) + `}`))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestChainClient(url string) *ChainClient {
	cfg := &config.Config{
		Solana: config.SolanaConfig{
			RPC:            url,
			Commitment:     "processed",
			RequestTimeout: 2 * time.Second,
		},
	}
	return NewChainClient(cfg, logger.New("error", "test"))
}

func TestChainClient_FetchTransaction(t *testing.T) {
	fixture := raydiumtest.NewInitFixture(raydiumtest.RandomKey(), solana.WrappedSol)
	confirmed := fixture.Transaction()
	confirmed.Transaction.Message.Header.NumRequiredSignatures = 1

	raw, err := confirmed.Transaction.MarshalBinary()
	require.NoError(t, err)

	logs, err := json.Marshal(fixture.Logs())
	require.NoError(t, err)

	result := `{"slot":321,"blockTime":null,"transaction":["` + base64.StdEncoding.EncodeToString(raw) + `","base64"],` +
		`"meta":{"err":null,"fee":5000,"preBalances":[],"postBalances":[],"innerInstructions":[],` +
		`"preTokenBalances":[],"postTokenBalances":[],"logMessages":` + string(logs) + `,` +
		`"loadedAddresses":{"writable":[],"readonly":[]}}}`

	server, requests := newRPCServer(t, map[string]string{"getTransaction": result})
	client := newTestChainClient(server.URL)

	tx, err := client.FetchTransaction(context.Background(), fixture.Signature)
	require.NoError(t, err)

	assert.Equal(t, uint64(321), tx.Slot)
	assert.Equal(t, confirmed.Transaction.Message.AccountKeys, tx.Transaction.Message.AccountKeys)
	assert.Equal(t, fixture.Logs(), tx.Meta.LogMessages)

	require.Len(t, *requests, 1)
	var opts map[string]interface{}
	require.NoError(t, json.Unmarshal((*requests)[0].Params[1], &opts))
	assert.Equal(t, "confirmed", opts["commitment"])
	assert.Equal(t, "base64", opts["encoding"])
	assert.Equal(t, float64(0), opts["maxSupportedTransactionVersion"])
}

func TestChainClient_FetchTransaction_NotFound(t *testing.T) {
	server, _ := newRPCServer(t, map[string]string{"getTransaction": "null"})
	client := newTestChainClient(server.URL)

	_, err := client.FetchTransaction(context.Background(), solana.Signature{1})
	assert.True(t, errors.Is(err, ErrTransactionNotFound))
}

func TestChainClient_FetchTransaction_RPCError(t *testing.T) {
	server, _ := newRPCServer(t, map[string]string{})
	client := newTestChainClient(server.URL)

	_, err := client.FetchTransaction(context.Background(), solana.Signature{1})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTransactionNotFound))
	assert.Contains(t, err.Error(), "method not found")
}

func TestChainClient_FetchAccountData(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	result := `{"context":{"slot":10},"value":{"data":["` + base64.StdEncoding.EncodeToString(data) + `","base64"],` +
		`"executable":false,"lamports":1000,"owner":"` + raydiumtest.MarketProgramID.String() + `","rentEpoch":0}}`

	server, requests := newRPCServer(t, map[string]string{"getAccountInfo": result})
	client := newTestChainClient(server.URL)

	account := raydiumtest.RandomKey()
	got, err := client.FetchAccountData(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.Len(t, *requests, 1)
	var address string
	require.NoError(t, json.Unmarshal((*requests)[0].Params[0], &address))
	assert.Equal(t, account.String(), address)
}

func TestChainClient_FetchAccountData_Missing(t *testing.T) {
	server, _ := newRPCServer(t, map[string]string{"getAccountInfo": `{"context":{"slot":10},"value":null}`})
	client := newTestChainClient(server.URL)

	_, err := client.FetchAccountData(context.Background(), raydiumtest.RandomKey())
	assert.True(t, errors.Is(err, ErrAccountNotFound))
}

func TestChainClient_LatestBlockhash(t *testing.T) {
	blockhash := solana.Hash(raydiumtest.RandomKey())
	result := `{"context":{"slot":10},"value":{"blockhash":"` + blockhash.String() + `","lastValidBlockHeight":200}}`

	server, _ := newRPCServer(t, map[string]string{"getLatestBlockhash": result})
	client := newTestChainClient(server.URL)

	got, err := client.LatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, blockhash, got)
}

func TestChainClient_Health(t *testing.T) {
	healthy, _ := newRPCServer(t, map[string]string{"getHealth": `"ok"`})
	assert.NoError(t, newTestChainClient(healthy.URL).Health(context.Background()))

	unhealthy, _ := newRPCServer(t, map[string]string{})
	assert.Error(t, newTestChainClient(unhealthy.URL).Health(context.Background()))
}
