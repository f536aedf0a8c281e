package hive

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// DefaultNodeURL is the public API node used when none is configured.
const DefaultNodeURL = "https://api.hive.blog"

// DefaultChainID is the Hive mainnet chain id.
const DefaultChainID = "beeab0de00000000000000000000000000000000000000000000000000000000"

// Client talks JSON-RPC to a Hive API node. It implements both the history
// queries the saver needs and the broadcast of signed transactions. Every
// request is a single attempt.
type Client struct {
	URL     string
	ChainID []byte
	Client  *http.Client

	limiter *rate.Limiter
	nextID  atomic.Int64
}

// NewClient creates a client with optional proxy support. requestsPerSecond
// paces calls to the node; zero or less disables pacing.
func NewClient(nodeURL, proxyURL string, requestsPerSecond float64) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if nodeURL == "" {
		nodeURL = DefaultNodeURL
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	chainID, _ := hex.DecodeString(DefaultChainID)
	return &Client{
		URL:     nodeURL,
		ChainID: chainID,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int64
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int64  `json:"id"`
}

// call performs one JSON-RPC request and returns its "result" member.
func (c *Client) call(ctx context.Context, method string, params any) (gjson.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return gjson.Result{}, errors.Wrapf(err, "%s: wait for rate limiter", method)
	}

	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: c.nextID.Add(1)})
	if err != nil {
		return gjson.Result{}, errors.Wrapf(err, "%s: marshal request", method)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, errors.Wrapf(err, "%s: build request", method)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return gjson.Result{}, errors.Wrapf(err, "%s", method)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, errors.Wrapf(err, "%s: read response", method)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, errors.Errorf("%s: status %d, body: %s", method, resp.StatusCode, string(data))
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.Errorf("%s: invalid JSON response", method)
	}

	parsed := gjson.ParseBytes(data)
	if e := parsed.Get("error"); e.Exists() {
		return gjson.Result{}, errors.Wrap(&RPCError{Code: e.Get("code").Int(), Message: e.Get("message").String()}, method)
	}
	result := parsed.Get("result")
	if !result.Exists() {
		return gjson.Result{}, errors.Errorf("%s: response has no result", method)
	}
	return result, nil
}
