package types

import (
	"context"

	"github.com/cosmos/cosmos-sdk/types/query"
)

type QuerySubscriptionRequest struct {
	Address string `json:"address"`
}

// QuerySubscriptionResponse carries a nil Subscription when the address never subscribed.
type QuerySubscriptionResponse struct {
	Subscription *Subscription `json:"subscription"`
}

type QueryOracleRequest struct {
	OracleId uint64 `json:"oracle_id"`
}

type QueryOracleResponse struct {
	Oracle *Oracle `json:"oracle"`
}

type QueryOraclesRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryOraclesResponse struct {
	Oracles    []Oracle            `json:"oracles"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

type QueryLatestDataRequest struct {
	OracleId uint64 `json:"oracle_id"`
}

type QueryLatestDataResponse struct {
	Data  *SubmittedData `json:"data"`
	Stale bool           `json:"stale"`
}

type QueryHasVotedRequest struct {
	OracleId uint64 `json:"oracle_id"`
	Voter    string `json:"voter"`
}

type QueryHasVotedResponse struct {
	HasVoted bool `json:"has_voted"`
}

type QueryVotersRequest struct {
	OracleId uint64 `json:"oracle_id"`
}

type QueryVotersResponse struct {
	Voters []string `json:"voters"`
}

type QuerySubscriptionFeeRequest struct{}

type QuerySubscriptionFeeResponse struct {
	Fee   uint64 `json:"fee"`
	Denom string `json:"denom"`
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

type QueryOwnerRequest struct{}

type QueryOwnerResponse struct {
	Owner string `json:"owner"`
}

type QueryTreasuryRequest struct{}

type QueryTreasuryResponse struct {
	Treasury Treasury `json:"treasury"`
	Denom    string   `json:"denom"`
}

// QueryServer is the read surface of the module. Reads never fail for a
// well-formed key; absence is reported with nil records.
type QueryServer interface {
	Subscription(context.Context, *QuerySubscriptionRequest) (*QuerySubscriptionResponse, error)
	Oracle(context.Context, *QueryOracleRequest) (*QueryOracleResponse, error)
	Oracles(context.Context, *QueryOraclesRequest) (*QueryOraclesResponse, error)
	LatestData(context.Context, *QueryLatestDataRequest) (*QueryLatestDataResponse, error)
	HasVoted(context.Context, *QueryHasVotedRequest) (*QueryHasVotedResponse, error)
	Voters(context.Context, *QueryVotersRequest) (*QueryVotersResponse, error)
	SubscriptionFee(context.Context, *QuerySubscriptionFeeRequest) (*QuerySubscriptionFeeResponse, error)
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Owner(context.Context, *QueryOwnerRequest) (*QueryOwnerResponse, error)
	Treasury(context.Context, *QueryTreasuryRequest) (*QueryTreasuryResponse, error)
}
