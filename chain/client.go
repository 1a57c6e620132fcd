package chain

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	contentTypeJSON        = "application/json"
	pathSmartContractState = "/cosmwasm.wasm.v1.Query/SmartContractState"
	pathSpendableBalance   = "/cosmos.bank.v1beta1.Query/SpendableBalanceByDenom"
	mempoolQueryLimit      = "1000"
)

// Client talks to a Tendermint RPC node over HTTP. It is not safe for
// concurrent use; the bot runs a single evaluation loop (see the watcher).
type Client struct {
	rpcURL     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an RPC client for the node at rpcURL.
func NewClient(rpcURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		rpcURL:     strings.TrimRight(rpcURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type abciQueryParams struct {
	Path   string `json:"path"`
	Data   string `json:"data"`
	Prove  bool   `json:"prove"`
	Height string `json:"height,omitempty"`
}

type abciQueryResult struct {
	Response struct {
		Code  uint32 `json:"code"`
		Log   string `json:"log"`
		Value string `json:"value"`
	} `json:"response"`
}

type unconfirmedTxsResult struct {
	Txs []string `json:"txs"`
}

// UnconfirmedTxs returns the raw base64 payloads currently pending in the
// node's mempool. Every failure mode, connectivity or decoding, comes back
// as a TransientError.
func (c *Client) UnconfirmedTxs(ctx context.Context) ([]string, error) {
	url := c.rpcURL + "/unconfirmed_txs?limit=" + mempoolQueryLimit
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build mempool request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transientf("query unconfirmed txs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, transientf("query unconfirmed txs", fmt.Errorf("status %s", resp.Status))
	}

	var envelope struct {
		Result *unconfirmedTxsResult `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, transientf("decode unconfirmed txs", err)
	}
	if envelope.Result == nil {
		return nil, transientf("decode unconfirmed txs", fmt.Errorf("response has no result"))
	}

	return envelope.Result.Txs, nil
}

// SmartContractState queries a CosmWasm contract's smart query endpoint and
// returns the contract's JSON response. height pins the query to a block
// when non-empty.
func (c *Client) SmartContractState(ctx context.Context, contractAddress string, query interface{}, height string) (json.RawMessage, error) {
	queryData, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contract query: %w", err)
	}

	value, err := c.abciQuery(ctx, pathSmartContractState, encodeSmartContractStateRequest(contractAddress, queryData), height)
	if err != nil {
		return nil, err
	}

	data, err := decodeSmartContractStateResponse(value)
	if err != nil {
		return nil, transientf("decode contract state", err)
	}
	return json.RawMessage(data), nil
}

// SpendableBalance returns the account's spendable balance in denom. On a
// lost connection the HTTP client is rebuilt and the balance reports as zero
// with reset=true, deferring the retry to the caller's next cycle.
func (c *Client) SpendableBalance(ctx context.Context, address, denom string) (balance *big.Int, reset bool, err error) {
	value, err := c.abciQuery(ctx, pathSpendableBalance, encodeSpendableBalanceRequest(address, denom), "")
	if err != nil {
		if IsTransient(err) {
			c.logger.Warn("Balance query failed, reconnecting client", zap.Error(err))
			c.Reconnect()
			return big.NewInt(0), true, nil
		}
		return nil, false, err
	}

	_, amount, err := decodeSpendableBalanceResponse(value)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode balance response: %w", err)
	}
	if amount == "" {
		return big.NewInt(0), false, nil
	}

	parsed, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, false, fmt.Errorf("invalid balance amount %q", amount)
	}
	return parsed, false, nil
}

// Reconnect replaces the underlying HTTP client, dropping any pooled
// connections to the node.
func (c *Client) Reconnect() {
	c.httpClient.CloseIdleConnections()
	c.httpClient = &http.Client{Timeout: c.timeout}
}

func (c *Client) abciQuery(ctx context.Context, path string, data []byte, height string) ([]byte, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "abci_query",
		Params: abciQueryParams{
			Path:   path,
			Data:   strings.ToUpper(hex.EncodeToString(data)),
			Prove:  false,
			Height: height,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal abci_query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build abci_query request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transientf("abci_query "+path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transientf("abci_query "+path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, transientf("abci_query "+path, fmt.Errorf("status %s: %s", resp.Status, body))
	}

	var envelope struct {
		Result *abciQueryResult `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, transientf("decode abci_query "+path, err)
	}
	if envelope.Result == nil {
		return nil, transientf("decode abci_query "+path, fmt.Errorf("response has no result"))
	}
	if envelope.Result.Response.Code != 0 {
		return nil, fmt.Errorf("abci_query %s failed with code %d: %s", path, envelope.Result.Response.Code, envelope.Result.Response.Log)
	}

	value, err := base64.StdEncoding.DecodeString(envelope.Result.Response.Value)
	if err != nil {
		return nil, transientf("decode abci_query "+path, err)
	}
	return value, nil
}
