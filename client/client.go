package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/pkg/errors"

	gurutypes "github.com/GPTx-global/guru-dataoracle/types"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// DefaultTimeout bounds every request that carries no deadline of its own.
const DefaultTimeout = 30 * time.Second

// Error is a call rejected by the API server.
type Error struct {
	Status    int
	Code      uint32
	Codespace string
	Reason    string
	Message   string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Reason, e.Status, e.Message)
}

// HasReason reports whether err is an *Error with the given reason code.
func HasReason(err error, reason string) bool {
	var e *Error
	return errors.As(err, &e) && e.Reason == reason
}

// IsNotFound reports whether err is the absence of the requested record.
func IsNotFound(err error) bool {
	return HasReason(err, types.ReasonNotFound)
}

// Client talks to the registry API server. It is safe for concurrent use.
// Writes are sent on behalf of the caller set with WithCaller.
type Client struct {
	client *http.Client
	base   url.URL
	caller string
}

// New creates a client for the server listening at node, e.g.
// http://127.0.0.1:1317.
func New(node string) (*Client, error) {
	if !strings.Contains(node, "://") {
		node = "http://" + node
	}
	base, err := url.Parse(node)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid node address %s", node)
	}
	if base.Host == "" {
		return nil, errors.Errorf("invalid node address %s: missing host", node)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")

	return &Client{
		client: &http.Client{Timeout: DefaultTimeout},
		base:   *base,
	}, nil
}

// WithCaller returns a copy of c that sends writes as caller.
func (c *Client) WithCaller(caller string) *Client {
	cc := *c
	cc.caller = caller
	return &cc
}

// Caller returns the address writes are sent as.
func (c *Client) Caller() string {
	return c.caller
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	u := c.base
	u.Path += path
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		bz, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(bz)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return errors.Wrapf(err, "failed to create request %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && c.caller != "" {
		req.Header.Set(gurutypes.CallerHeader, c.caller)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read response of %s %s", method, path)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &Error{Status: resp.StatusCode}
		var errResp gurutypes.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil {
			apiErr.Message = string(bytes.TrimSpace(respBody))
			return apiErr
		}
		apiErr.Code = errResp.Code
		apiErr.Codespace = errResp.Codespace
		apiErr.Reason = errResp.Reason
		apiErr.Message = errResp.Error
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "failed to decode response of %s %s", method, path)
	}
	return nil
}

func oraclePath(id uint64, suffix string) string {
	return "/v1/oracles/" + strconv.FormatUint(id, 10) + suffix
}

// Status returns the chain id and committed height of the server.
func (c *Client) Status(ctx context.Context) (*gurutypes.StatusResponse, error) {
	var res gurutypes.StatusResponse
	if err := c.do(ctx, http.MethodGet, "/v1/status", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Subscribe buys a subscription of the given tier for the caller.
func (c *Client) Subscribe(ctx context.Context, subscriptionType, payment string) (*gurutypes.TxResponse, error) {
	var res gurutypes.TxResponse
	req := gurutypes.SubscribeRequest{SubscriptionType: subscriptionType, Payment: payment}
	if err := c.do(ctx, http.MethodPost, "/v1/subscriptions", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RegisterOracle registers the caller as provider of a new oracle and returns
// its id.
func (c *Client) RegisterOracle(ctx context.Context, dataType, stake string) (uint64, *gurutypes.TxResponse, error) {
	var res gurutypes.TxResponse
	req := gurutypes.RegisterOracleRequest{DataType: dataType, Stake: stake}
	if err := c.do(ctx, http.MethodPost, "/v1/oracles", nil, req, &res); err != nil {
		return 0, nil, err
	}

	var data types.MsgRegisterOracleResponse
	if err := json.Unmarshal(res.Data, &data); err != nil {
		return 0, nil, errors.Wrap(err, "failed to decode register oracle response")
	}
	return data.OracleId, &res, nil
}

// SubmitData replaces the latest value of an oracle.
func (c *Client) SubmitData(ctx context.Context, oracleID uint64, value string) (*gurutypes.TxResponse, error) {
	var res gurutypes.TxResponse
	req := gurutypes.SubmitDataRequest{Value: value}
	if err := c.do(ctx, http.MethodPost, oraclePath(oracleID, "/data"), nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// VerifyData marks the latest value of an oracle as verified.
func (c *Client) VerifyData(ctx context.Context, oracleID uint64) (*gurutypes.TxResponse, error) {
	var res gurutypes.TxResponse
	if err := c.do(ctx, http.MethodPost, oraclePath(oracleID, "/data/verify"), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// VoteOracle casts the caller's vote for an oracle.
func (c *Client) VoteOracle(ctx context.Context, oracleID uint64) (*gurutypes.TxResponse, error) {
	var res gurutypes.TxResponse
	if err := c.do(ctx, http.MethodPost, oraclePath(oracleID, "/votes"), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetSubscriptionFee changes the subscription fee. Only the owner may call it.
func (c *Client) SetSubscriptionFee(ctx context.Context, fee uint64) (*gurutypes.TxResponse, error) {
	var res gurutypes.TxResponse
	req := gurutypes.SetSubscriptionFeeRequest{NewFee: &fee}
	if err := c.do(ctx, http.MethodPut, "/v1/params/subscription-fee", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Subscription returns the subscription of address.
func (c *Client) Subscription(ctx context.Context, address string) (*types.Subscription, error) {
	var res types.QuerySubscriptionResponse
	if err := c.do(ctx, http.MethodGet, "/v1/subscriptions/"+url.PathEscape(address), nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Subscription, nil
}

// Oracle returns an oracle by id.
func (c *Client) Oracle(ctx context.Context, oracleID uint64) (*types.Oracle, error) {
	var res types.QueryOracleResponse
	if err := c.do(ctx, http.MethodGet, oraclePath(oracleID, ""), nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Oracle, nil
}

// Oracles lists oracles in id order. page may be nil.
func (c *Client) Oracles(ctx context.Context, page *query.PageRequest) (*types.QueryOraclesResponse, error) {
	params := url.Values{}
	if page != nil {
		if page.Limit > 0 {
			params.Set("limit", strconv.FormatUint(page.Limit, 10))
		}
		if page.Offset > 0 {
			params.Set("offset", strconv.FormatUint(page.Offset, 10))
		}
		if len(page.Key) > 0 {
			params.Set("key", base64.StdEncoding.EncodeToString(page.Key))
		}
		if page.CountTotal {
			params.Set("count_total", "true")
		}
	}

	var res types.QueryOraclesResponse
	if err := c.do(ctx, http.MethodGet, "/v1/oracles", params, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// LatestData returns the latest value of an oracle and whether it is stale.
func (c *Client) LatestData(ctx context.Context, oracleID uint64) (*types.QueryLatestDataResponse, error) {
	var res types.QueryLatestDataResponse
	if err := c.do(ctx, http.MethodGet, oraclePath(oracleID, "/data"), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// HasVoted reports whether voter already voted for an oracle.
func (c *Client) HasVoted(ctx context.Context, oracleID uint64, voter string) (bool, error) {
	var res types.QueryHasVotedResponse
	if err := c.do(ctx, http.MethodGet, oraclePath(oracleID, "/votes/"+url.PathEscape(voter)), nil, nil, &res); err != nil {
		return false, err
	}
	return res.HasVoted, nil
}

// Voters returns the addresses that voted for an oracle.
func (c *Client) Voters(ctx context.Context, oracleID uint64) ([]string, error) {
	var res types.QueryVotersResponse
	if err := c.do(ctx, http.MethodGet, oraclePath(oracleID, "/votes"), nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Voters, nil
}

func (c *Client) SubscriptionFee(ctx context.Context) (*types.QuerySubscriptionFeeResponse, error) {
	var res types.QuerySubscriptionFeeResponse
	if err := c.do(ctx, http.MethodGet, "/v1/params/subscription-fee", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Params(ctx context.Context) (*types.Params, error) {
	var res types.QueryParamsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/params", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.Params, nil
}

func (c *Client) Owner(ctx context.Context) (string, error) {
	var res types.QueryOwnerResponse
	if err := c.do(ctx, http.MethodGet, "/v1/owner", nil, nil, &res); err != nil {
		return "", err
	}
	return res.Owner, nil
}

func (c *Client) Treasury(ctx context.Context) (*types.QueryTreasuryResponse, error) {
	var res types.QueryTreasuryResponse
	if err := c.do(ctx, http.MethodGet, "/v1/treasury", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Genesis exports the committed state.
func (c *Client) Genesis(ctx context.Context) (*types.GenesisState, error) {
	var res types.GenesisState
	if err := c.do(ctx, http.MethodGet, "/v1/genesis", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
